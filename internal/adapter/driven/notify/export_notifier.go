package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/domain/repository"
	"github.com/diillson/aws-cost-report/internal/shared/types"
)

// ExportNotifier grava o resumo em arquivos, um por tipo de relatório.
type ExportNotifier struct {
	exportRepo  repository.ExportRepository
	console     types.ConsoleInterface
	reportName  string
	reportTypes []string
	dir         string
}

// NewExportNotifier creates a notifier writing reportTypes into dir.
func NewExportNotifier(exportRepo repository.ExportRepository, console types.ConsoleInterface, reportName string, reportTypes []string, dir string) repository.Notifier {
	return &ExportNotifier{
		exportRepo:  exportRepo,
		console:     console,
		reportName:  reportName,
		reportTypes: reportTypes,
		dir:         dir,
	}
}

func (n *ExportNotifier) Name() string { return "export" }

func (n *ExportNotifier) Notify(_ context.Context, summary *entity.MonthlyCostSummary) error {
	for _, reportType := range n.reportTypes {
		var (
			path string
			err  error
		)
		switch strings.ToLower(reportType) {
		case "txt":
			path, err = n.exportRepo.ExportToText(summary, n.reportName, n.dir)
		case "csv":
			path, err = n.exportRepo.ExportToCSV(summary, n.reportName, n.dir)
		case "json":
			path, err = n.exportRepo.ExportToJSON(summary, n.reportName, n.dir)
		case "pdf":
			path, err = n.exportRepo.ExportToPDF(summary, n.reportName, n.dir)
		default:
			err = fmt.Errorf("unsupported report type: %s", reportType)
		}
		if err != nil {
			return fmt.Errorf("failed to export report to %s: %w", strings.ToUpper(reportType), err)
		}
		n.console.LogSuccess("Successfully exported report to %s: %s", strings.ToUpper(reportType), path)
	}
	return nil
}
