package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/diillson/aws-cost-report/internal/domain/entity"
	"github.com/diillson/aws-cost-report/internal/domain/repository"
	"github.com/diillson/aws-cost-report/pkg/version"
)

// WebhookNotifier posta o relatório em um webhook de chat.
// O sabor "slack" envia {"text": ...} e o "discord" envia {"content": ...};
// os dois renderizam o bloco ``` da ranking como código.
type WebhookNotifier struct {
	url    string
	field  string
	client *http.Client
}

// NewWebhookNotifier creates a notifier for url. An unknown flavor is an error.
func NewWebhookNotifier(url, flavor string, client *http.Client) (repository.Notifier, error) {
	var field string
	switch strings.ToLower(flavor) {
	case "", "slack":
		field = "text"
	case "discord":
		field = "content"
	default:
		return nil, fmt.Errorf("unsupported webhook flavor: %s", flavor)
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookNotifier{url: url, field: field, client: client}, nil
}

func (n *WebhookNotifier) Name() string { return "webhook" }

func (n *WebhookNotifier) Notify(ctx context.Context, summary *entity.MonthlyCostSummary) error {
	payload, err := json.Marshal(map[string]string{n.field: summary.Report})
	if err != nil {
		return fmt.Errorf("error encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("error creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("error posting report to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
