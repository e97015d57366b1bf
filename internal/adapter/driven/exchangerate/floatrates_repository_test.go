package exchangerate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diillson/aws-cost-report/internal/shared/types"
)

func serve(t *testing.T, status int, body string) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestFetchRate(t *testing.T) {
	body := `{
		"usd": {"code": "USD", "alphaCode": "USD", "rate": 0.0066733, "inverseRate": 149.85119},
		"eur": {"code": "EUR", "rate": 0.0061, "inverseRate": 162.3}
	}`

	rate, err := NewFloatRatesRepository(serve(t, http.StatusOK, body), nil).FetchRate(context.Background())
	if err != nil {
		t.Fatalf("FetchRate: %v", err)
	}
	if rate.Rate != 149.85119 {
		t.Errorf("Rate = %v, want 149.85119", rate.Rate)
	}
	if rate.Source != "USD" || rate.Target != "JPY" {
		t.Errorf("pair = %s/%s, want USD/JPY", rate.Source, rate.Target)
	}
}

func TestFetchRate_Unavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"missing field", http.StatusOK, `{"usd": {"code": "USD", "rate": 0.0067}}`},
		{"null field", http.StatusOK, `{"usd": {"inverseRate": null}}`},
		{"string field", http.StatusOK, `{"usd": {"inverseRate": "149.8"}}`},
		{"missing currency", http.StatusOK, `{"eur": {"inverseRate": 162.3}}`},
		{"not json", http.StatusOK, `<html>maintenance</html>`},
		{"server error", http.StatusInternalServerError, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFloatRatesRepository(serve(t, tt.status, tt.body), nil).FetchRate(context.Background())
			if !errors.Is(err, types.ErrRateUnavailable) {
				t.Errorf("err = %v, want ErrRateUnavailable", err)
			}
		})
	}
}

func TestFetchRate_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewFloatRatesRepository(url, nil).FetchRate(context.Background())
	if !errors.Is(err, types.ErrRateUnavailable) {
		t.Errorf("err = %v, want ErrRateUnavailable", err)
	}
}
