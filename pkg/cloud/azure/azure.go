package azure

import (
	"context"
	"log/slog"

	"multicloud/internal/config"
	"multicloud/internal/provider/registry"
	"multicloud/internal/runner"
	"multicloud/pkg/cloud"
	"multicloud/pkg/provision"
)

func init() {
	registry.RegisterProvider("azure", registry.ProviderRegistration{
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// Azure auth and subscription selection live in the az CLI's own state, so no
// prior tool configuration is required
func isConfigured(cfg *config.Config) bool {
	return true
}

func initialize(ctx context.Context, settings cloud.Settings, run runner.Runner, logger *slog.Logger) (cloud.Platform, error) {
	return NewAzurePlatform(settings.Location, run, logger), nil
}

// AzurePlatform drives the az CLI rather than an SDK. The infrastructure tool
// already requires a logged-in az session for azure stacks, so the CLI is the
// credential source of truth here.
type AzurePlatform struct {
	location string
	run      runner.Runner
	logger   *slog.Logger
}

var _ cloud.Platform = (*AzurePlatform)(nil)

func NewAzurePlatform(location string, run runner.Runner, logger *slog.Logger) *AzurePlatform {
	return &AzurePlatform{
		location: location,
		run:      run,
		logger:   logger,
	}
}

func (p *AzurePlatform) ProviderName() provision.Provider {
	return provision.Azure
}

func (p *AzurePlatform) CheckCredentials(ctx context.Context) error {
	if _, err := p.run.Run(ctx, nil, "az", "account", "show", "--output", "none"); err != nil {
		return &provision.AuthenticationError{Provider: provision.Azure, Err: err}
	}

	p.logger.Debug("Azure credentials verified")
	return nil
}

func (p *AzurePlatform) EnsureStateBackend(ctx context.Context, name string) error {
	_, err := p.run.Run(ctx, nil,
		"az", "storage", "container", "create",
		"--name", name,
		"--auth-mode", "login",
		"--output", "none",
	)
	if err != nil {
		return err
	}

	p.logger.Info("State container ready", "container", name)
	return nil
}

func (p *AzurePlatform) Close() error {
	return nil
}
