package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/domain/repository"
	"github.com/diillson/aws-cost-report/internal/shared/types"
	"github.com/diillson/aws-cost-report/pkg/version"
)

// Par de moedas fixo do relatório.
const (
	SourceCurrency = "USD"
	TargetCurrency = "JPY"
)

// FloatRatesRepository lê a cotação diária publicada pelo floatrates.com.
// O feed é indexado pela moeda-alvo e cada entrada traz o inverseRate,
// isto é, quantas unidades da moeda-alvo valem uma unidade da moeda de origem.
type FloatRatesRepository struct {
	url    string
	client *http.Client
}

// NewFloatRatesRepository creates the repository. An empty url uses the
// public JPY feed; a nil client gets a 15 second timeout.
func NewFloatRatesRepository(url string, client *http.Client) repository.ExchangeRateRepository {
	if url == "" {
		url = types.DefaultExchangeRateURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &FloatRatesRepository{url: url, client: client}
}

type floatRatesEntry struct {
	Code        string   `json:"code"`
	InverseRate *float64 `json:"inverseRate"`
}

// FetchRate returns JPY per 1 USD. It makes a single attempt.
func (r *FloatRatesRepository) FetchRate(ctx context.Context) (entity.ExchangeRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return entity.ExchangeRate{}, fmt.Errorf("%w: create request: %w", types.ErrRateUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := r.client.Do(req)
	if err != nil {
		return entity.ExchangeRate{}, fmt.Errorf("%w: %w", types.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.ExchangeRate{}, fmt.Errorf("%w: HTTP %d", types.ErrRateUnavailable, resp.StatusCode)
	}

	var feed map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return entity.ExchangeRate{}, fmt.Errorf("%w: decode feed: %w", types.ErrRateUnavailable, err)
	}

	key := strings.ToLower(SourceCurrency)
	raw, ok := feed[key]
	if !ok {
		return entity.ExchangeRate{}, fmt.Errorf("%w: no %q entry in feed", types.ErrRateUnavailable, key)
	}

	var entry floatRatesEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return entity.ExchangeRate{}, fmt.Errorf("%w: decode %q entry: %w", types.ErrRateUnavailable, key, err)
	}
	if entry.InverseRate == nil {
		return entity.ExchangeRate{}, fmt.Errorf("%w: %q entry has no inverseRate", types.ErrRateUnavailable, key)
	}

	return entity.ExchangeRate{Source: SourceCurrency, Target: TargetCurrency, Rate: *entry.InverseRate}, nil
}
