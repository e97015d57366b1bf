package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/diillson/aws-cost-report/internal/shared/types"
)

type fakeCostExplorer struct {
	usageInputs    []*costexplorer.GetCostAndUsageInput
	forecastInputs []*costexplorer.GetCostForecastInput

	usageOutput    *costexplorer.GetCostAndUsageOutput
	usageErr       error
	forecastOutput *costexplorer.GetCostForecastOutput
	forecastErr    error
}

func (f *fakeCostExplorer) GetCostAndUsage(_ context.Context, params *costexplorer.GetCostAndUsageInput, _ ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	f.usageInputs = append(f.usageInputs, params)
	if f.usageErr != nil {
		return nil, f.usageErr
	}
	return f.usageOutput, nil
}

func (f *fakeCostExplorer) GetCostForecast(_ context.Context, params *costexplorer.GetCostForecastInput, _ ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error) {
	f.forecastInputs = append(f.forecastInputs, params)
	if f.forecastErr != nil {
		return nil, f.forecastErr
	}
	return f.forecastOutput, nil
}

var testNow = time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC)

func group(key string, amount *string) ceTypes.Group {
	g := ceTypes.Group{Keys: []string{key}, Metrics: map[string]ceTypes.MetricValue{}}
	if amount != nil {
		g.Metrics[unblendedCost] = ceTypes.MetricValue{Amount: amount, Unit: aws.String("USD")}
	}
	return g
}

func newTestRepo(fake *fakeCostExplorer) *BillingRepositoryImpl {
	return NewBillingRepository(fake, types.FixedClock(testNow)).(*BillingRepositoryImpl)
}

func TestFetchServiceCosts(t *testing.T) {
	fake := &fakeCostExplorer{
		usageOutput: &costexplorer.GetCostAndUsageOutput{
			ResultsByTime: []ceTypes.ResultByTime{{
				Groups: []ceTypes.Group{
					group("Amazon Elastic Compute Cloud - Compute", aws.String("10.00")),
					group("Amazon Simple Storage Service", aws.String("25.5000000001")),
					group("AWS Lambda", aws.String("not-a-number")),
					group("Tax", nil),
				},
			}},
		},
	}

	entries, err := newTestRepo(fake).FetchServiceCosts(context.Background())
	if err != nil {
		t.Fatalf("FetchServiceCosts: %v", err)
	}

	if len(fake.usageInputs) != 1 {
		t.Fatalf("calls = %d, want 1", len(fake.usageInputs))
	}
	in := fake.usageInputs[0]
	if got := aws.ToString(in.TimePeriod.Start); got != "2026-10-17" {
		t.Errorf("Start = %s, want 2026-10-17", got)
	}
	if got := aws.ToString(in.TimePeriod.End); got != "2026-10-18" {
		t.Errorf("End = %s, want 2026-10-18", got)
	}
	if in.Granularity != ceTypes.GranularityDaily {
		t.Errorf("Granularity = %s, want DAILY", in.Granularity)
	}
	if len(in.Metrics) != 1 || in.Metrics[0] != "UnblendedCost" {
		t.Errorf("Metrics = %v", in.Metrics)
	}
	if len(in.GroupBy) != 1 || aws.ToString(in.GroupBy[0].Key) != "SERVICE" || in.GroupBy[0].Type != ceTypes.GroupDefinitionTypeDimension {
		t.Errorf("GroupBy = %+v", in.GroupBy)
	}

	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	if entries[0].Label != "Amazon Elastic Compute Cloud - Compute" || entries[0].Amount != 10 || !entries[0].Valid {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Amount != 25.5000000001 || entries[1].Currency != "USD" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[2].Valid || entries[2].Amount != 0 {
		t.Errorf("unparsable amount should be invalid: %+v", entries[2])
	}
	if entries[3].Valid {
		t.Errorf("missing metric should be invalid: %+v", entries[3])
	}
}

func TestFetchServiceCosts_NoData(t *testing.T) {
	tests := []struct {
		name   string
		output *costexplorer.GetCostAndUsageOutput
	}{
		{"zero buckets", &costexplorer.GetCostAndUsageOutput{}},
		{"bucket without groups", &costexplorer.GetCostAndUsageOutput{ResultsByTime: []ceTypes.ResultByTime{{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestRepo(&fakeCostExplorer{usageOutput: tt.output}).FetchServiceCosts(context.Background())
			if !errors.Is(err, types.ErrNoData) {
				t.Errorf("err = %v, want ErrNoData", err)
			}
		})
	}
}

func TestFetchServiceCosts_APIError(t *testing.T) {
	boom := errors.New("throttled")
	_, err := newTestRepo(&fakeCostExplorer{usageErr: boom}).FetchServiceCosts(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestFetchForecast(t *testing.T) {
	fake := &fakeCostExplorer{
		forecastOutput: &costexplorer.GetCostForecastOutput{
			Total: &ceTypes.MetricValue{Amount: aws.String("312.456"), Unit: aws.String("USD")},
		},
	}

	amount, err := newTestRepo(fake).FetchForecast(context.Background())
	if err != nil {
		t.Fatalf("FetchForecast: %v", err)
	}
	if amount != 312.456 {
		t.Errorf("amount = %v, want 312.456", amount)
	}

	in := fake.forecastInputs[0]
	if got := aws.ToString(in.TimePeriod.Start); got != "2026-10-19" {
		t.Errorf("Start = %s, want 2026-10-19", got)
	}
	if got := aws.ToString(in.TimePeriod.End); got != "2026-11-01" {
		t.Errorf("End = %s, want 2026-11-01", got)
	}
	if in.Metric != ceTypes.MetricUnblendedCost || in.Granularity != ceTypes.GranularityMonthly {
		t.Errorf("Metric/Granularity = %s/%s", in.Metric, in.Granularity)
	}
}

func TestFetchForecast_Failures(t *testing.T) {
	tests := []struct {
		name      string
		fake      *fakeCostExplorer
		malformed bool
	}{
		{"api error", &fakeCostExplorer{forecastErr: errors.New("denied")}, false},
		{"no total", &fakeCostExplorer{forecastOutput: &costexplorer.GetCostForecastOutput{}}, false},
		{"no amount", &fakeCostExplorer{forecastOutput: &costexplorer.GetCostForecastOutput{Total: &ceTypes.MetricValue{}}}, false},
		{"unparsable", &fakeCostExplorer{forecastOutput: &costexplorer.GetCostForecastOutput{Total: &ceTypes.MetricValue{Amount: aws.String("abc")}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestRepo(tt.fake).FetchForecast(context.Background())
			if !errors.Is(err, types.ErrForecastUnavailable) {
				t.Errorf("err = %v, want ErrForecastUnavailable", err)
			}
			if got := errors.Is(err, types.ErrMalformedAmount); got != tt.malformed {
				t.Errorf("errors.Is(ErrMalformedAmount) = %v, want %v", got, tt.malformed)
			}
		})
	}
}

func TestFetchMonthToDateCost(t *testing.T) {
	fake := &fakeCostExplorer{
		usageOutput: &costexplorer.GetCostAndUsageOutput{
			ResultsByTime: []ceTypes.ResultByTime{{
				Total: map[string]ceTypes.MetricValue{
					"UnblendedCost": {Amount: aws.String("123.45"), Unit: aws.String("USD")},
				},
			}},
		},
	}

	amount, err := newTestRepo(fake).FetchMonthToDateCost(context.Background())
	if err != nil {
		t.Fatalf("FetchMonthToDateCost: %v", err)
	}
	if amount != 123.45 {
		t.Errorf("amount = %v, want 123.45", amount)
	}

	in := fake.usageInputs[0]
	if got := aws.ToString(in.TimePeriod.Start); got != "2026-10-01" {
		t.Errorf("Start = %s, want 2026-10-01", got)
	}
	if got := aws.ToString(in.TimePeriod.End); got != "2026-11-01" {
		t.Errorf("End = %s, want 2026-11-01", got)
	}
	if in.Granularity != ceTypes.GranularityMonthly {
		t.Errorf("Granularity = %s, want MONTHLY", in.Granularity)
	}
	if len(in.GroupBy) != 0 {
		t.Errorf("GroupBy = %+v, want none", in.GroupBy)
	}
}

func TestFetchMonthToDateCost_Failures(t *testing.T) {
	tests := []struct {
		name   string
		output *costexplorer.GetCostAndUsageOutput
	}{
		{"zero buckets", &costexplorer.GetCostAndUsageOutput{}},
		{"no total", &costexplorer.GetCostAndUsageOutput{ResultsByTime: []ceTypes.ResultByTime{{}}}},
		{"other metric only", &costexplorer.GetCostAndUsageOutput{ResultsByTime: []ceTypes.ResultByTime{{
			Total: map[string]ceTypes.MetricValue{"BlendedCost": {Amount: aws.String("1")}},
		}}}},
		{"unparsable", &costexplorer.GetCostAndUsageOutput{ResultsByTime: []ceTypes.ResultByTime{{
			Total: map[string]ceTypes.MetricValue{"UnblendedCost": {Amount: aws.String("")}},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestRepo(&fakeCostExplorer{usageOutput: tt.output}).FetchMonthToDateCost(context.Background())
			if !errors.Is(err, types.ErrMonthToDateUnavailable) {
				t.Errorf("err = %v, want ErrMonthToDateUnavailable", err)
			}
		})
	}
}

func TestParseAmount_RejectsNonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "1e400", "", "12,5"} {
		if _, err := parseAmount(raw); !errors.Is(err, types.ErrMalformedAmount) {
			t.Errorf("parseAmount(%q) err = %v, want ErrMalformedAmount", raw, err)
		}
	}
}
