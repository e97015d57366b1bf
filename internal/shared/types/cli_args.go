package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile   string
	Profile      string
	Region       string
	DisplayCount *int
	LabelWidth   *int
	WebhookURL   string
	ReportName   string
	ReportType   []string
	Dir          string
	Budgets      bool
	JSONLogs     bool
}
