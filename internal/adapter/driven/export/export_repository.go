package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/domain/repository"
	"github.com/diillson/aws-cost-report/internal/domain/service"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToText grava o relatório exatamente como foi entregue.
func (r *ExportRepositoryImpl) ExportToText(summary *entity.MonthlyCostSummary, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "txt", summary.GeneratedAt)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, []byte(summary.Report), 0o644); err != nil {
		return "", fmt.Errorf("error writing text file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToCSV(summary *entity.MonthlyCostSummary, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv", summary.GeneratedAt)
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	rate := summary.Rate.Rate
	records := [][]string{
		{"Section", "Name", "Period", "Cost (USD)", "Cost (JPY)"},
		costRecord("summary", "Total two days ago", summary.Windows.TwoDaysAgo, summary.TotalTwoDaysAgo, rate),
		costRecord("summary", "Month to date", summary.Windows.Month, summary.TotalMonthToDate, rate),
		costRecord("summary", "Forecast rest of month", summary.Windows.Forecast, summary.ForecastRestOfMonth, rate),
	}
	for _, e := range summary.TopServices {
		if !e.Displayable() {
			continue
		}
		records = append(records, costRecord("service", e.Label, summary.Windows.TwoDaysAgo, e.Amount, rate))
	}
	for _, b := range summary.Budgets {
		records = append(records, []string{
			"budget", b.Name, "",
			service.SourceAmount(b.Actual),
			fmt.Sprintf("limit %s, forecast %s, %.1f%% used", service.SourceAmount(b.Limit), service.SourceAmount(b.Forecast), b.UsagePercent()),
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func costRecord(section, name string, window entity.DateWindow, amountUSD, rate float64) []string {
	return []string{
		section,
		name,
		window.String(),
		service.SourceAmount(amountUSD),
		strconv.FormatFloat(service.TargetAmount(amountUSD, rate), 'f', -1, 64),
	}
}

func (r *ExportRepositoryImpl) ExportToJSON(summary *entity.MonthlyCostSummary, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json", summary.GeneratedAt)
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF renders the summary with the core PDF fonts, which have no
// Japanese glyphs, so amounts are written as "JPY n ($m)".
func (r *ExportRepositoryImpl) ExportToPDF(summary *entity.MonthlyCostSummary, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf", summary.GeneratedAt)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	rate := summary.Rate.Rate
	amount := func(usd float64) string {
		return fmt.Sprintf("JPY %s ($%s)",
			strconv.FormatFloat(service.TargetAmount(usd, rate), 'f', -1, 64),
			service.SourceAmount(usd))
	}

	drawSectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	row := func(label, value string) {
		pdf.CellFormat(110, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, tr(value), "", 1, "R", false, 0, "")
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  AWS Daily Cost Report"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	accountID := summary.AccountID
	if accountID == "" {
		accountID = "unknown"
	}
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Account ID: %s    Rate: 1 USD = %g JPY", accountID, rate)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	drawSectionTitle("Cost Summary")
	row(fmt.Sprintf("Two days ago (%s)", summary.Windows.TwoDaysAgo), amount(summary.TotalTwoDaysAgo))
	row(fmt.Sprintf("Month to date (%s)", summary.Windows.Month), amount(summary.TotalMonthToDate))
	row(fmt.Sprintf("Forecast (%s)", summary.Windows.Forecast), amount(summary.ForecastRestOfMonth))
	pdf.Ln(8)

	drawSectionTitle("Top Services Two Days Ago")
	rank := 0
	for _, e := range summary.TopServices {
		if !e.Displayable() {
			continue
		}
		rank++
		label := e.Label
		if len(label) > 60 {
			label = label[:57] + "..."
		}
		row(fmt.Sprintf("%d. %s", rank, label), amount(e.Amount))
	}
	if rank == 0 {
		row("No service costs", "")
	}
	pdf.Ln(8)

	if len(summary.Budgets) > 0 {
		drawSectionTitle("Budget Status")
		for _, b := range summary.Budgets {
			row(b.Name, fmt.Sprintf("$%s / $%s (%.1f%%)", service.SourceAmount(b.Actual), service.SourceAmount(b.Limit), b.UsagePercent()))
		}
		pdf.Ln(8)
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by aws-cost-report | run %s | %s", summary.RunID, summary.GeneratedAt.Format("2006-01-02 15:04 MST"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func generateFilename(base, dir, ext string, at time.Time) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	if at.IsZero() {
		at = time.Now()
	}
	filename := fmt.Sprintf("%s_%s.%s", base, at.Format("20060102_150405"), ext)
	return filepath.Join(dir, filename), nil
}
