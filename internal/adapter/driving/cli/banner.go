package cli

import (
	"fmt"
	"io"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/shared/types"
	"github.com/diillson/aws-cost-report/pkg/console"
	"github.com/diillson/aws-cost-report/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(out io.Writer) {
	banner := `
     _____      _____     ___         _     ___                   _
    /_\ \    / / __|   / __|___ __| |_  | _ \___ _ __  ___ _ _| |_
   / _ \ \/\/ /\__ \  | (__/ _ (_-<  _| |   / -_) '_ \/ _ \ '_|  _|
  /_/ \_\_/\_/ |___/   \___\___/__/\__| |_|_\___| .__/\___/_|  \__|
                                                |_|
`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(out, red(banner))
	fmt.Fprintln(out, blue(fmt.Sprintf("AWS Cost Report CLI (v%s)", version.FormatVersion())))
}

// displayBudgets mostra o estado dos budgets anexados ao resumo.
func displayBudgets(con types.ConsoleInterface, budgets []entity.BudgetInfo) {
	table := con.CreateTable()
	table.AddColumn("Budget")
	table.AddColumn("Limit")
	table.AddColumn("Actual")
	table.AddColumn("Forecast")
	table.AddColumn("Usage")

	for _, b := range budgets {
		usage := b.UsagePercent()
		usageText := fmt.Sprintf("%.1f%%", usage)
		switch {
		case usage >= 100:
			usageText = console.BrightRed(usageText)
		case usage >= 80:
			usageText = console.BrightYellow(usageText)
		default:
			usageText = console.BrightGreen(usageText)
		}
		table.AddRow(
			console.BrightMagenta(b.Name),
			fmt.Sprintf("$%.2f", b.Limit),
			fmt.Sprintf("$%.2f", b.Actual),
			fmt.Sprintf("$%.2f", b.Forecast),
			usageText,
		)
	}

	con.Println(table.Render())
}
