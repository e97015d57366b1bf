package types

import (
	"fmt"
	"strings"
)

// Valores padrão da configuração.
const (
	DefaultDisplayCount       = 5
	DefaultLabelWidth         = 50
	DefaultExchangeRateURL    = "https://www.floatrates.com/daily/jpy.json"
	DefaultCostExplorerRegion = "us-east-1"
	DefaultReportName         = "aws-cost-report"
)

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Profile            string        `json:"profile" yaml:"profile" toml:"profile"`
	Region             string        `json:"region" yaml:"region" toml:"region"`
	CostExplorerRegion string        `json:"cost_explorer_region" yaml:"cost_explorer_region" toml:"cost_explorer_region"`
	ExchangeRateURL    string        `json:"exchange_rate_url" yaml:"exchange_rate_url" toml:"exchange_rate_url"`
	DisplayCount       int           `json:"display_count" yaml:"display_count" toml:"display_count"`
	LabelWidth         int           `json:"label_width" yaml:"label_width" toml:"label_width"`
	TruncateLabels     bool          `json:"truncate_labels" yaml:"truncate_labels" toml:"truncate_labels"`
	Budgets            bool          `json:"budgets" yaml:"budgets" toml:"budgets"`
	Console            *bool         `json:"console" yaml:"console" toml:"console"`
	Webhook            WebhookConfig `json:"webhook" yaml:"webhook" toml:"webhook"`
	ReportName         string        `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType         []string      `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir                string        `json:"dir" yaml:"dir" toml:"dir"`
}

// WebhookConfig descreve o destino de chat que recebe o relatório.
type WebhookConfig struct {
	URL    string `json:"url" yaml:"url" toml:"url"`
	Flavor string `json:"flavor" yaml:"flavor" toml:"flavor"`
}

// ConsoleEnabled reports whether the report should be printed to stdout.
// Unset means enabled.
func (c *Config) ConsoleEnabled() bool {
	return c.Console == nil || *c.Console
}

// DefaultConfig returns the configuration used when nothing is provided.
func DefaultConfig() *Config {
	return &Config{
		CostExplorerRegion: DefaultCostExplorerRegion,
		ExchangeRateURL:    DefaultExchangeRateURL,
		DisplayCount:       DefaultDisplayCount,
		LabelWidth:         DefaultLabelWidth,
		ReportName:         DefaultReportName,
		Webhook:            WebhookConfig{Flavor: "slack"},
	}
}

// Formatos de exportação e sabores de webhook suportados.
var (
	SupportedReportTypes    = []string{"txt", "csv", "json", "pdf"}
	SupportedWebhookFlavors = []string{"slack", "discord"}
)

// ApplyArgs overrides the configuration with flags given on the command line.
func (c *Config) ApplyArgs(args *CLIArgs) {
	if args == nil {
		return
	}
	if args.Profile != "" {
		c.Profile = args.Profile
	}
	if args.Region != "" {
		c.Region = args.Region
	}
	if args.DisplayCount != nil {
		c.DisplayCount = *args.DisplayCount
	}
	if args.LabelWidth != nil {
		c.LabelWidth = *args.LabelWidth
	}
	if args.WebhookURL != "" {
		c.Webhook.URL = args.WebhookURL
	}
	if args.ReportName != "" {
		c.ReportName = args.ReportName
	}
	if len(args.ReportType) > 0 {
		c.ReportType = args.ReportType
	}
	if args.Dir != "" {
		c.Dir = args.Dir
	}
	if args.Budgets {
		c.Budgets = true
	}
}

// Validate checks values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	if c.DisplayCount < 1 {
		return fmt.Errorf("display count must be at least 1, got %d", c.DisplayCount)
	}
	if c.LabelWidth < 1 {
		return fmt.Errorf("label width must be at least 1, got %d", c.LabelWidth)
	}
	for _, t := range c.ReportType {
		if !contains(SupportedReportTypes, strings.ToLower(t)) {
			return fmt.Errorf("unsupported report type %q (supported: %s)", t, strings.Join(SupportedReportTypes, ", "))
		}
	}
	if c.Webhook.URL != "" && !contains(SupportedWebhookFlavors, strings.ToLower(c.Webhook.Flavor)) {
		return fmt.Errorf("unsupported webhook flavor %q (supported: %s)", c.Webhook.Flavor, strings.Join(SupportedWebhookFlavors, ", "))
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
