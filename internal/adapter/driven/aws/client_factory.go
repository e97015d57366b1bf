package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// globalRegion is where Cost Explorer and Budgets are served from.
const globalRegion = "us-east-1"

// ClientFactory carrega a configuração da AWS uma única vez e cria os clientes.
type ClientFactory struct {
	profile            string
	region             string
	costExplorerRegion string

	mu  sync.Mutex
	cfg *aws.Config
}

// NewClientFactory creates a factory. Empty profile and region fall back to
// the SDK's default credential chain (env vars, shared config, Lambda role).
func NewClientFactory(profile, region, costExplorerRegion string) *ClientFactory {
	if costExplorerRegion == "" {
		costExplorerRegion = globalRegion
	}
	return &ClientFactory{
		profile:            profile,
		region:             region,
		costExplorerRegion: costExplorerRegion,
	}
}

func (f *ClientFactory) config(ctx context.Context) (aws.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cfg != nil {
		return *f.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if f.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(f.profile))
	}
	if f.region != "" {
		opts = append(opts, config.WithRegion(f.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		if f.profile != "" {
			return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", f.profile, err)
		}
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	f.cfg = &cfg
	return cfg, nil
}

// CostExplorer returns a Cost Explorer client pinned to its serving region.
func (f *ClientFactory) CostExplorer(ctx context.Context) (*costexplorer.Client, error) {
	cfg, err := f.config(ctx)
	if err != nil {
		return nil, err
	}
	regionalCfg := cfg.Copy()
	regionalCfg.Region = f.costExplorerRegion
	return costexplorer.NewFromConfig(regionalCfg), nil
}

// STS returns an STS client in the configured region.
func (f *ClientFactory) STS(ctx context.Context) (*sts.Client, error) {
	cfg, err := f.config(ctx)
	if err != nil {
		return nil, err
	}
	regionalCfg := cfg.Copy()
	if regionalCfg.Region == "" {
		regionalCfg.Region = globalRegion
	}
	return sts.NewFromConfig(regionalCfg), nil
}

// Budgets returns a Budgets client.
func (f *ClientFactory) Budgets(ctx context.Context) (*budgets.Client, error) {
	cfg, err := f.config(ctx)
	if err != nil {
		return nil, err
	}
	regionalCfg := cfg.Copy()
	regionalCfg.Region = globalRegion
	return budgets.NewFromConfig(regionalCfg), nil
}
