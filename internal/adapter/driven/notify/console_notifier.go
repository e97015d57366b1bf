package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/domain/repository"
)

// ConsoleNotifier imprime o relatório sem alterações.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier writes to out, or stdout when out is nil.
func NewConsoleNotifier(out io.Writer) repository.Notifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{out: out}
}

func (n *ConsoleNotifier) Name() string { return "console" }

func (n *ConsoleNotifier) Notify(_ context.Context, summary *entity.MonthlyCostSummary) error {
	if _, err := fmt.Fprintln(n.out, summary.Report); err != nil {
		return fmt.Errorf("error writing report to console: %w", err)
	}
	return nil
}
