package repository

import (
	"context"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
)

// Notifier delivers a finished report. The summary carries the report text
// in Report along with the values it was built from.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, summary *entity.MonthlyCostSummary) error
}
