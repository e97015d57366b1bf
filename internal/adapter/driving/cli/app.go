package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/diillson/aws-cost-report/internal/adapter/driving/lambda"
	"github.com/diillson/aws-cost-report/internal/domain/repository"
	"github.com/diillson/aws-cost-report/internal/shared/types"
	"github.com/diillson/aws-cost-report/pkg/console"
	"github.com/diillson/aws-cost-report/pkg/version"
	"github.com/spf13/cobra"
)

// Variáveis de ambiente lidas pela CLI.
const (
	lambdaRuntimeEnv = "AWS_LAMBDA_RUNTIME_API"
	configFileEnv    = "COST_REPORT_CONFIG_FILE"
	lambdaOutputDir  = "/tmp"
)

// UseCaseBuilder monta o caso de uso a partir da configuração final.
type UseCaseBuilder func(ctx context.Context, cfg *types.Config, console types.ConsoleInterface) (lambda.ReportRunner, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd      *cobra.Command
	configRepo   repository.ConfigRepository
	buildUseCase UseCaseBuilder
	version      string

	lookupEnv   func(string) (string, bool)
	stdout      io.Writer
	startLambda func(*lambda.Handler)
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, buildUseCase UseCaseBuilder) *CLIApp {
	app := &CLIApp{
		configRepo:   configRepo,
		buildUseCase: buildUseCase,
		version:      versionStr,
		lookupEnv:    os.LookupEnv,
		stdout:       os.Stdout,
		startLambda:  lambda.Start,
	}

	rootCmd := &cobra.Command{
		Use:           version.Name,
		Short:         "Daily AWS cost report in JPY",
		Long:          "Fetches AWS Cost Explorer data, converts it to JPY and delivers a ranked cost report.\nInside AWS Lambda it waits for scheduled EventBridge events instead of running once.",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}
	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Report version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file (env: "+configFileEnv+")")
	flags.StringP("profile", "p", "", "AWS profile to use (default: SDK credential chain)")
	flags.StringP("region", "r", "", "AWS region for the SDK configuration")
	flags.IntP("display-count", "n", types.DefaultDisplayCount, "Number of services in the ranking")
	flags.Int("label-width", types.DefaultLabelWidth, "Column width of service names in the ranking")
	flags.String("webhook-url", "", "Chat webhook that receives the report")
	flags.String("report-name", "", "Base name for exported report files (without extension)")
	flags.StringSliceP("report-type", "y", nil, "Export the summary as: txt, csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save exported files (default: current directory)")
	flags.Bool("budgets", false, "Attach AWS Budgets status to the summary")
	flags.Bool("json-logs", false, "Write logs as JSON lines instead of the interactive console")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "lambda",
		Short: "Start the AWS Lambda runtime loop",
		Args:  cobra.NoArgs,
		RunE:  app.runLambda,
	})

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	profile, _ := flags.GetString("profile")
	region, _ := flags.GetString("region")
	webhookURL, _ := flags.GetString("webhook-url")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	budgets, _ := flags.GetBool("budgets")
	jsonLogs, _ := flags.GetBool("json-logs")

	if configFile == "" {
		configFile, _ = app.lookupEnv(configFileEnv)
	}

	// Convert to absolute path
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		Profile:    profile,
		Region:     region,
		WebhookURL: webhookURL,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		Budgets:    budgets,
		JSONLogs:   jsonLogs,
	}

	// Só sobrescreve o arquivo/ambiente quando a flag foi passada.
	if flags.Changed("display-count") {
		n, _ := flags.GetInt("display-count")
		args.DisplayCount = &n
	}
	if flags.Changed("label-width") {
		w, _ := flags.GetInt("label-width")
		args.LabelWidth = &w
	}

	return args, nil
}

// loadConfig resolve a configuração: padrões, arquivo, ambiente e flags,
// nessa ordem de precedência crescente.
func (app *CLIApp) loadConfig(args *types.CLIArgs) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if args.ConfigFile != "" {
		loaded, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := app.configRepo.ApplyEnv(cfg, app.lookupEnv); err != nil {
		return nil, err
	}
	cfg.ApplyArgs(args)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	if _, ok := app.lookupEnv(lambdaRuntimeEnv); ok {
		return app.runLambda(cmd, nil)
	}

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	var con types.ConsoleInterface
	if cliArgs.JSONLogs {
		con = console.NewJSONConsole(app.stdout)
	} else {
		displayWelcomeBanner(app.stdout)
		con = console.NewConsole()
	}

	cfg, err := app.loadConfig(cliArgs)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner, err := app.buildUseCase(ctx, cfg, con)
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if len(summary.Budgets) > 0 {
		displayBudgets(con, summary.Budgets)
	}
	return nil
}

// runLambda monta o caso de uso uma vez e entrega o handler ao runtime.
func (app *CLIApp) runLambda(cmd *cobra.Command, _ []string) error {
	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	con := console.NewJSONConsole(app.stdout).With("function", lambdacontext.FunctionName)

	cfg, err := app.loadConfig(cliArgs)
	if err != nil {
		con.LogError("Invalid configuration: %s", err)
		return err
	}
	// Only /tmp is writable inside Lambda.
	if cfg.Dir == "" {
		cfg.Dir = lambdaOutputDir
	}

	runner, err := app.buildUseCase(context.Background(), cfg, con)
	if err != nil {
		con.LogError("Failed to initialize report: %s", err)
		return err
	}

	con.LogInfo("Starting Lambda handler, version %s", app.version)
	app.startLambda(lambda.NewHandler(runner, con))
	return nil
}
