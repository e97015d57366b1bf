package repository

import (
	"context"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
)

// ExchangeRateRepository fetches the conversion rate used for one run.
type ExchangeRateRepository interface {
	FetchRate(ctx context.Context) (entity.ExchangeRate, error)
}
