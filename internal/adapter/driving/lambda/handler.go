package lambda

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/shared/types"
)

// ReportRunner é o caso de uso disparado a cada evento agendado.
type ReportRunner interface {
	Run(ctx context.Context) (*entity.MonthlyCostSummary, error)
}

// Handler recebe o evento do EventBridge e executa um relatório.
// O conteúdo do evento é ignorado.
type Handler struct {
	runner  ReportRunner
	console types.ConsoleInterface
}

// NewHandler creates a handler. The runner is built once per cold start and
// reused across invocations.
func NewHandler(runner ReportRunner, console types.ConsoleInterface) *Handler {
	return &Handler{runner: runner, console: console}
}

// Handle runs one report. A returned error marks the invocation as failed so
// the scheduler's retry and alarm policy applies.
func (h *Handler) Handle(ctx context.Context, event events.CloudWatchEvent) error {
	requestID := "local"
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}
	h.console.LogInfo("Received %q event %s from %s (request %s)", event.DetailType, event.ID, event.Source, requestID)

	if _, err := h.runner.Run(ctx); err != nil {
		return err
	}
	return nil
}

// Start hands the handler to the Lambda runtime. It does not return.
func Start(h *Handler) {
	awslambda.Start(h.Handle)
}
