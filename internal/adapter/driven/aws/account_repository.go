package aws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/domain/repository"
)

// STSAPI is the part of the STS client the repository calls.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// BudgetsAPI is the part of the Budgets client the repository calls.
type BudgetsAPI interface {
	DescribeBudgets(ctx context.Context, params *budgets.DescribeBudgetsInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error)
}

// AccountRepositoryImpl implementa o AccountRepository.
type AccountRepositoryImpl struct {
	sts     STSAPI
	budgets BudgetsAPI
}

// NewAccountRepository cria uma nova implementação do AccountRepository.
// budgetsClient may be nil when budgets are not requested.
func NewAccountRepository(stsClient STSAPI, budgetsClient BudgetsAPI) repository.AccountRepository {
	return &AccountRepositoryImpl{sts: stsClient, budgets: budgetsClient}
}

func (r *AccountRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	result, err := r.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID: %w", err)
	}
	if result.Account == nil {
		return "", fmt.Errorf("error getting account ID: empty caller identity")
	}
	return *result.Account, nil
}

// GetBudgets lists the first page of budgets for the account.
func (r *AccountRepositoryImpl) GetBudgets(ctx context.Context, accountID string) ([]entity.BudgetInfo, error) {
	if r.budgets == nil {
		return nil, nil
	}

	result, err := r.budgets.DescribeBudgets(ctx, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(accountID),
	})
	if err != nil {
		return nil, fmt.Errorf("error describing budgets: %w", err)
	}

	budgetsData := []entity.BudgetInfo{}
	for _, budget := range result.Budgets {
		b := entity.BudgetInfo{Name: aws.ToString(budget.BudgetName)}
		if budget.BudgetLimit != nil {
			b.Limit, _ = strconv.ParseFloat(aws.ToString(budget.BudgetLimit.Amount), 64)
		}
		if budget.CalculatedSpend != nil {
			if budget.CalculatedSpend.ActualSpend != nil {
				b.Actual, _ = strconv.ParseFloat(aws.ToString(budget.CalculatedSpend.ActualSpend.Amount), 64)
			}
			if budget.CalculatedSpend.ForecastedSpend != nil {
				b.Forecast, _ = strconv.ParseFloat(aws.ToString(budget.CalculatedSpend.ForecastedSpend.Amount), 64)
			}
		}
		budgetsData = append(budgetsData, b)
	}

	return budgetsData, nil
}
