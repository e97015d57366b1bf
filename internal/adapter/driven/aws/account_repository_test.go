package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	budgetTypes "github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type fakeSTS struct {
	account *string
	err     error
}

func (f *fakeSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Account: f.account}, nil
}

type fakeBudgets struct {
	accountID string
	output    *budgets.DescribeBudgetsOutput
}

func (f *fakeBudgets) DescribeBudgets(_ context.Context, params *budgets.DescribeBudgetsInput, _ ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error) {
	f.accountID = aws.ToString(params.AccountId)
	return f.output, nil
}

func TestGetAccountID(t *testing.T) {
	repo := NewAccountRepository(&fakeSTS{account: aws.String("123456789012")}, nil)
	id, err := repo.GetAccountID(context.Background())
	if err != nil || id != "123456789012" {
		t.Errorf("GetAccountID = %q, %v", id, err)
	}

	repo = NewAccountRepository(&fakeSTS{err: errors.New("expired token")}, nil)
	if _, err := repo.GetAccountID(context.Background()); err == nil {
		t.Error("expected error")
	}

	repo = NewAccountRepository(&fakeSTS{}, nil)
	if _, err := repo.GetAccountID(context.Background()); err == nil {
		t.Error("expected error for empty identity")
	}
}

func TestGetBudgets(t *testing.T) {
	fb := &fakeBudgets{output: &budgets.DescribeBudgetsOutput{
		Budgets: []budgetTypes.Budget{
			{
				BudgetName:  aws.String("monthly"),
				BudgetLimit: &budgetTypes.Spend{Amount: aws.String("100"), Unit: aws.String("USD")},
				CalculatedSpend: &budgetTypes.CalculatedSpend{
					ActualSpend:     &budgetTypes.Spend{Amount: aws.String("42.5"), Unit: aws.String("USD")},
					ForecastedSpend: &budgetTypes.Spend{Amount: aws.String("90"), Unit: aws.String("USD")},
				},
			},
			{BudgetName: aws.String("no-spend-yet")},
		},
	}}

	got, err := NewAccountRepository(&fakeSTS{}, fb).GetBudgets(context.Background(), "123456789012")
	if err != nil {
		t.Fatalf("GetBudgets: %v", err)
	}
	if fb.accountID != "123456789012" {
		t.Errorf("AccountId = %q", fb.accountID)
	}
	if len(got) != 2 {
		t.Fatalf("budgets = %d, want 2", len(got))
	}
	if got[0].Limit != 100 || got[0].Actual != 42.5 || got[0].Forecast != 90 {
		t.Errorf("budget[0] = %+v", got[0])
	}
	if got[0].UsagePercent() != 42.5 {
		t.Errorf("UsagePercent = %v, want 42.5", got[0].UsagePercent())
	}
	if got[1].Name != "no-spend-yet" || got[1].Actual != 0 {
		t.Errorf("budget[1] = %+v", got[1])
	}
}

func TestGetBudgets_Disabled(t *testing.T) {
	got, err := NewAccountRepository(&fakeSTS{}, nil).GetBudgets(context.Background(), "1")
	if err != nil || got != nil {
		t.Errorf("GetBudgets without client = %v, %v", got, err)
	}
}
