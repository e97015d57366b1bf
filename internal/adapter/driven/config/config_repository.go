package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/aws-cost-report/internal/domain/repository"
	"github.com/diillson/aws-cost-report/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixa todas as variáveis de ambiente lidas pela aplicação.
const EnvPrefix = "COST_REPORT_"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Campos ausentes no arquivo mantêm os valores padrão.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fileConfig types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	config := types.DefaultConfig()
	merge(config, &fileConfig)
	return config, nil
}

// ApplyEnv sobrescreve a configuração com variáveis COST_REPORT_*.
// É assim que a função Lambda recebe sua configuração.
func (r *ConfigRepositoryImpl) ApplyEnv(cfg *types.Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	for name, dst := range map[string]*string{
		"PROFILE":              &cfg.Profile,
		"REGION":               &cfg.Region,
		"COST_EXPLORER_REGION": &cfg.CostExplorerRegion,
		"EXCHANGE_RATE_URL":    &cfg.ExchangeRateURL,
		"WEBHOOK_URL":          &cfg.Webhook.URL,
		"WEBHOOK_FLAVOR":       &cfg.Webhook.Flavor,
		"REPORT_NAME":          &cfg.ReportName,
		"DIR":                  &cfg.Dir,
	} {
		if v, ok := get(name); ok && v != "" {
			*dst = v
		}
	}

	for name, dst := range map[string]*int{
		"DISPLAY_COUNT": &cfg.DisplayCount,
		"LABEL_WIDTH":   &cfg.LabelWidth,
	} {
		if v, ok := get(name); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, name, v, err)
			}
			*dst = n
		}
	}

	for name, dst := range map[string]*bool{
		"TRUNCATE_LABELS": &cfg.TruncateLabels,
		"BUDGETS":         &cfg.Budgets,
	} {
		if v, ok := get(name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, name, v, err)
			}
			*dst = b
		}
	}

	if v, ok := get("CONSOLE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sCONSOLE %q: %w", EnvPrefix, v, err)
		}
		cfg.Console = &b
	}

	if v, ok := get("REPORT_TYPE"); ok && v != "" {
		cfg.ReportType = splitList(v)
	}

	return nil
}

// merge copia para dst os campos definidos em src.
func merge(dst, src *types.Config) {
	if src.Profile != "" {
		dst.Profile = src.Profile
	}
	if src.Region != "" {
		dst.Region = src.Region
	}
	if src.CostExplorerRegion != "" {
		dst.CostExplorerRegion = src.CostExplorerRegion
	}
	if src.ExchangeRateURL != "" {
		dst.ExchangeRateURL = src.ExchangeRateURL
	}
	if src.DisplayCount != 0 {
		dst.DisplayCount = src.DisplayCount
	}
	if src.LabelWidth != 0 {
		dst.LabelWidth = src.LabelWidth
	}
	if src.TruncateLabels {
		dst.TruncateLabels = true
	}
	if src.Budgets {
		dst.Budgets = true
	}
	if src.Console != nil {
		dst.Console = src.Console
	}
	if src.Webhook.URL != "" {
		dst.Webhook.URL = src.Webhook.URL
	}
	if src.Webhook.Flavor != "" {
		dst.Webhook.Flavor = src.Webhook.Flavor
	}
	if src.ReportName != "" {
		dst.ReportName = src.ReportName
	}
	if len(src.ReportType) > 0 {
		dst.ReportType = src.ReportType
	}
	if src.Dir != "" {
		dst.Dir = src.Dir
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
