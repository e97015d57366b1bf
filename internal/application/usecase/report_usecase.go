package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/domain/repository"
	"github.com/diillson/aws-cost-report/internal/domain/service"
	"github.com/diillson/aws-cost-report/internal/shared/types"
	"github.com/google/uuid"
)

// ReportOptions ajusta a montagem do relatório.
type ReportOptions struct {
	DisplayCount int
	LabelPolicy  service.LabelPolicy
	Budgets      bool
	Clock        types.Clock
}

// ReportUseCase handles one run of the cost report.
type ReportUseCase struct {
	billingRepo repository.BillingRepository
	rateRepo    repository.ExchangeRateRepository
	accountRepo repository.AccountRepository
	notifiers   []repository.Notifier
	console     types.ConsoleInterface
	builder     *service.ReportBuilder
	opts        ReportOptions
	newRunID    func() string
}

// NewReportUseCase creates a new report use case. accountRepo may be nil.
func NewReportUseCase(
	billingRepo repository.BillingRepository,
	rateRepo repository.ExchangeRateRepository,
	accountRepo repository.AccountRepository,
	notifiers []repository.Notifier,
	console types.ConsoleInterface,
	opts ReportOptions,
) *ReportUseCase {
	if opts.DisplayCount == 0 {
		opts.DisplayCount = types.DefaultDisplayCount
	}
	if opts.LabelPolicy.Width == 0 {
		opts.LabelPolicy = service.DefaultLabelPolicy()
	}
	if opts.Clock == nil {
		opts.Clock = types.SystemClock
	}
	return &ReportUseCase{
		billingRepo: billingRepo,
		rateRepo:    rateRepo,
		accountRepo: accountRepo,
		notifiers:   notifiers,
		console:     console,
		builder:     service.NewReportBuilder(opts.LabelPolicy),
		opts:        opts,
		newRunID:    uuid.NewString,
	}
}

// fetchResult guarda os quatro valores buscados. Cada campo é escrito por
// uma única goroutine e só é lido depois do Wait.
type fetchResult struct {
	rate         entity.ExchangeRate
	serviceCosts entity.CostEntryList
	forecast     float64
	monthToDate  float64
}

// Run executa o relatório: busca, agrega, formata e entrega.
// Qualquer falha aborta a execução sem entregar nada.
func (uc *ReportUseCase) Run(ctx context.Context) (*entity.MonthlyCostSummary, error) {
	runID := uc.newRunID()
	uc.console.LogInfo("Starting cost report run %s", runID)

	windows, err := uc.billingRepo.Windows()
	if err != nil {
		return nil, uc.fail(runID, err)
	}

	status := uc.console.Status("Fetching exchange rate and cost data...")
	data, err := uc.fetchAll(ctx)
	status.Stop()
	if err != nil {
		return nil, uc.fail(runID, err)
	}
	rate := data.rate.Rate
	uc.console.LogInfo("exchange_rate: 1 %s = %v %s", data.rate.Source, rate, data.rate.Target)

	totalCost := service.ComputeTotal(data.serviceCosts)
	uc.console.LogInfo("total_cost: %v", totalCost)

	formattedTotalCost := service.FormatAmount(totalCost, rate)
	uc.console.LogInfo("formatted_total_cost: %s", formattedTotalCost)

	formattedCostPerService := uc.builder.BuildServiceRanking(data.serviceCosts, rate, uc.opts.DisplayCount)
	uc.console.LogInfo("formatted_cost_per_service: %s", formattedCostPerService)

	formattedForecast := service.FormatAmount(data.forecast, rate)
	uc.console.LogInfo("formatted_forecast: %s", formattedForecast)

	formattedMonthlyCost := service.FormatAmount(data.monthToDate, rate)
	uc.console.LogInfo("formatted_monthly_cost: %s", formattedMonthlyCost)

	summary := &entity.MonthlyCostSummary{
		RunID:               runID,
		GeneratedAt:         uc.opts.Clock(),
		Windows:             windows,
		TotalTwoDaysAgo:     totalCost,
		TotalMonthToDate:    data.monthToDate,
		ForecastRestOfMonth: data.forecast,
		TopServices:         service.RankTop(data.serviceCosts, uc.opts.DisplayCount),
		Rate:                data.rate,
		Report:              uc.builder.BuildReport(formattedTotalCost, formattedMonthlyCost, formattedForecast, formattedCostPerService),
	}

	uc.attachAccountContext(ctx, summary)

	for _, n := range uc.notifiers {
		if err := n.Notify(ctx, summary); err != nil {
			return nil, uc.fail(runID, fmt.Errorf("failed to deliver report via %s: %w", n.Name(), err))
		}
	}

	uc.console.LogSuccess("Cost report run %s delivered to %d destination(s)", runID, len(uc.notifiers))
	return summary, nil
}

// fetchAll busca a cotação e os três dados de custo em paralelo.
// O primeiro erro cancela as demais chamadas.
func (uc *ReportUseCase) fetchAll(ctx context.Context) (fetchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result fetchResult
	var wg sync.WaitGroup
	errChan := make(chan error, 4)

	fetch := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				errChan <- err
				cancel()
			}
		}()
	}

	fetch(func() error {
		rate, err := uc.rateRepo.FetchRate(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch exchange rate: %w", err)
		}
		result.rate = rate
		return nil
	})

	fetch(func() error {
		costs, err := uc.billingRepo.FetchServiceCosts(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch cost by service: %w", err)
		}
		result.serviceCosts = costs
		return nil
	})

	fetch(func() error {
		forecast, err := uc.billingRepo.FetchForecast(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch current month forecast: %w", err)
		}
		result.forecast = forecast
		return nil
	})

	fetch(func() error {
		monthToDate, err := uc.billingRepo.FetchMonthToDateCost(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch current month cost: %w", err)
		}
		result.monthToDate = monthToDate
		return nil
	})

	wg.Wait()
	close(errChan)

	if err, ok := <-errChan; ok {
		return fetchResult{}, err
	}
	return result, nil
}

// attachAccountContext adds the account ID and, when enabled, budgets.
// Neither is needed for the report text, so failures only warn.
func (uc *ReportUseCase) attachAccountContext(ctx context.Context, summary *entity.MonthlyCostSummary) {
	if uc.accountRepo == nil {
		return
	}

	accountID, err := uc.accountRepo.GetAccountID(ctx)
	if err != nil {
		uc.console.LogWarning("Could not resolve AWS account ID: %s", err)
		return
	}
	summary.AccountID = accountID
	uc.console.LogInfo("account_id: %s", accountID)

	if !uc.opts.Budgets {
		return
	}
	budgets, err := uc.accountRepo.GetBudgets(ctx, accountID)
	if err != nil {
		uc.console.LogWarning("Could not load budgets: %s", err)
		return
	}
	summary.Budgets = budgets
	for _, b := range budgets {
		uc.console.LogInfo("budget %s: $%.2f of $%.2f (%.1f%%), forecast $%.2f", b.Name, b.Actual, b.Limit, b.UsagePercent(), b.Forecast)
	}
}

func (uc *ReportUseCase) fail(runID string, err error) error {
	uc.console.LogError("Cost report run %s failed [%s]: %s", runID, types.ErrorKind(err), err)
	return err
}
