package aws

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/domain/repository"
	"github.com/diillson/aws-cost-report/internal/domain/service"
	"github.com/diillson/aws-cost-report/internal/shared/types"
)

const (
	unblendedCost    = "UnblendedCost"
	serviceDimension = "SERVICE"
	dateLayout       = "2006-01-02"
)

// CostExplorerAPI is the part of the Cost Explorer client the repository calls.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	GetCostForecast(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error)
}

// BillingRepositoryImpl implementa o BillingRepository sobre o Cost Explorer.
// Um único cliente atende as três consultas.
type BillingRepositoryImpl struct {
	client CostExplorerAPI
	clock  types.Clock
}

// NewBillingRepository cria uma nova implementação do BillingRepository.
func NewBillingRepository(client CostExplorerAPI, clock types.Clock) repository.BillingRepository {
	if clock == nil {
		clock = types.SystemClock
	}
	return &BillingRepositoryImpl{client: client, clock: clock}
}

// Windows computes the query windows from the injected clock.
func (r *BillingRepositoryImpl) Windows() (entity.BillingWindows, error) {
	return service.BillingWindows(r.clock())
}

// FetchServiceCosts returns the unblended cost per service for the day two
// days ago, in the order Cost Explorer returned them.
func (r *BillingRepositoryImpl) FetchServiceCosts(ctx context.Context) (entity.CostEntryList, error) {
	windows, err := r.Windows()
	if err != nil {
		return nil, err
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod:  dateInterval(windows.TwoDaysAgo),
		Granularity: ceTypes.GranularityDaily,
		Metrics:     []string{unblendedCost},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String(serviceDimension)},
		},
	}

	result, err := r.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get cost by service for %s: %w", windows.TwoDaysAgo, err)
	}

	if len(result.ResultsByTime) == 0 || len(result.ResultsByTime[0].Groups) == 0 {
		return nil, fmt.Errorf("%w for %s", types.ErrNoData, windows.TwoDaysAgo)
	}

	groups := result.ResultsByTime[0].Groups
	entries := make(entity.CostEntryList, 0, len(groups))
	for _, group := range groups {
		entries = append(entries, toCostEntry(group))
	}
	return entries, nil
}

// FetchForecast returns the forecasted unblended cost from today until the
// end of the month.
func (r *BillingRepositoryImpl) FetchForecast(ctx context.Context) (float64, error) {
	windows, err := r.Windows()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrForecastUnavailable, err)
	}

	input := &costexplorer.GetCostForecastInput{
		TimePeriod:  dateInterval(windows.Forecast),
		Metric:      ceTypes.MetricUnblendedCost,
		Granularity: ceTypes.GranularityMonthly,
	}

	result, err := r.client.GetCostForecast(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrForecastUnavailable, err)
	}
	if result.Total == nil || result.Total.Amount == nil {
		return 0, fmt.Errorf("%w: no total in forecast for %s", types.ErrForecastUnavailable, windows.Forecast)
	}

	amount, err := parseAmount(*result.Total.Amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrForecastUnavailable, err)
	}
	return amount, nil
}

// FetchMonthToDateCost returns the unblended cost of the current month so far.
func (r *BillingRepositoryImpl) FetchMonthToDateCost(ctx context.Context) (float64, error) {
	windows, err := r.Windows()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrMonthToDateUnavailable, err)
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod:  dateInterval(windows.Month),
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{unblendedCost},
	}

	result, err := r.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrMonthToDateUnavailable, err)
	}

	if len(result.ResultsByTime) == 0 || result.ResultsByTime[0].Total == nil {
		return 0, fmt.Errorf("%w: no total for %s", types.ErrMonthToDateUnavailable, windows.Month)
	}
	metric, ok := result.ResultsByTime[0].Total[unblendedCost]
	if !ok || metric.Amount == nil {
		return 0, fmt.Errorf("%w: no %s in total for %s", types.ErrMonthToDateUnavailable, unblendedCost, windows.Month)
	}

	amount, err := parseAmount(*metric.Amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrMonthToDateUnavailable, err)
	}
	return amount, nil
}

func dateInterval(w entity.DateWindow) *ceTypes.DateInterval {
	return &ceTypes.DateInterval{
		Start: aws.String(w.Start.Format(dateLayout)),
		End:   aws.String(w.End.Format(dateLayout)),
	}
}

// toCostEntry converte um grupo do Cost Explorer. Um valor ausente ou
// inválido gera uma entrada não exibível em vez de um erro.
func toCostEntry(group ceTypes.Group) entity.CostEntry {
	e := entity.CostEntry{Currency: entity.CurrencyUSD}
	if len(group.Keys) > 0 {
		e.Label = group.Keys[0]
	}

	metric, ok := group.Metrics[unblendedCost]
	if !ok || metric.Amount == nil {
		return e
	}
	if amount, err := parseAmount(*metric.Amount); err == nil {
		e.Amount = amount
		e.Valid = true
	}
	return e
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q", types.ErrMalformedAmount, raw)
	}
	return amount, nil
}
