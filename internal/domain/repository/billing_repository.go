package repository

import (
	"context"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
)

// BillingRepository defines the interface for the billing provider.
type BillingRepository interface {
	// Windows returns the date windows the fetch operations query right now.
	Windows() (entity.BillingWindows, error)

	FetchServiceCosts(ctx context.Context) (entity.CostEntryList, error)
	FetchForecast(ctx context.Context) (float64, error)
	FetchMonthToDateCost(ctx context.Context) (float64, error)
}

// AccountRepository provides optional account context for a report.
type AccountRepository interface {
	GetAccountID(ctx context.Context) (string, error)
	GetBudgets(ctx context.Context, accountID string) ([]entity.BudgetInfo, error)
}
