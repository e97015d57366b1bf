package repository

import (
	"github.com/diillson/aws-cost-report/internal/domain/entity"
)

// ExportRepository writes a report summary to files.
type ExportRepository interface {
	ExportToText(summary *entity.MonthlyCostSummary, filename, outputDir string) (string, error)
	ExportToCSV(summary *entity.MonthlyCostSummary, filename, outputDir string) (string, error)
	ExportToJSON(summary *entity.MonthlyCostSummary, filename, outputDir string) (string, error)
	ExportToPDF(summary *entity.MonthlyCostSummary, filename, outputDir string) (string, error)
}
