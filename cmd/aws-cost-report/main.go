package main

import (
	"context"
	"fmt"
	"os"

	"github.com/diillson/aws-cost-report/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-report/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-report/internal/adapter/driven/exchangerate"
	"github.com/diillson/aws-cost-report/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-report/internal/adapter/driven/notify"
	"github.com/diillson/aws-cost-report/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-report/internal/adapter/driving/lambda"
	"github.com/diillson/aws-cost-report/internal/application/usecase"
	"github.com/diillson/aws-cost-report/internal/domain/repository"
	"github.com/diillson/aws-cost-report/internal/domain/service"
	"github.com/diillson/aws-cost-report/internal/shared/types"
	"github.com/diillson/aws-cost-report/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, config.NewConfigRepository(), buildReportUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildReportUseCase liga os repositórios e notificadores à configuração final.
func buildReportUseCase(ctx context.Context, cfg *types.Config, con types.ConsoleInterface) (lambda.ReportRunner, error) {
	factory := aws.NewClientFactory(cfg.Profile, cfg.Region, cfg.CostExplorerRegion)

	ceClient, err := factory.CostExplorer(ctx)
	if err != nil {
		return nil, err
	}
	stsClient, err := factory.STS(ctx)
	if err != nil {
		return nil, err
	}

	// Interface nil, não *budgets.Client nil, quando desligado.
	var budgetsClient aws.BudgetsAPI
	if cfg.Budgets {
		client, err := factory.Budgets(ctx)
		if err != nil {
			return nil, err
		}
		budgetsClient = client
	}

	notifiers, err := buildNotifiers(cfg, con)
	if err != nil {
		return nil, err
	}

	return usecase.NewReportUseCase(
		aws.NewBillingRepository(ceClient, types.SystemClock),
		exchangerate.NewFloatRatesRepository(cfg.ExchangeRateURL, nil),
		aws.NewAccountRepository(stsClient, budgetsClient),
		notifiers,
		con,
		usecase.ReportOptions{
			DisplayCount: cfg.DisplayCount,
			LabelPolicy:  service.LabelPolicy{Width: cfg.LabelWidth, Truncate: cfg.TruncateLabels},
			Budgets:      cfg.Budgets,
			Clock:        types.SystemClock,
		},
	), nil
}

func buildNotifiers(cfg *types.Config, con types.ConsoleInterface) ([]repository.Notifier, error) {
	var notifiers []repository.Notifier

	if cfg.ConsoleEnabled() {
		notifiers = append(notifiers, notify.NewConsoleNotifier(os.Stdout))
	}

	if cfg.Webhook.URL != "" {
		webhook, err := notify.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Flavor, nil)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, webhook)
	}

	if len(cfg.ReportType) > 0 {
		notifiers = append(notifiers, notify.NewExportNotifier(export.NewExportRepository(), con, cfg.ReportName, cfg.ReportType, cfg.Dir))
	}

	if len(notifiers) == 0 {
		return nil, fmt.Errorf("no report destination configured: enable console, set a webhook URL or a report type")
	}
	return notifiers, nil
}
