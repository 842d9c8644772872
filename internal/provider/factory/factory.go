package factory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"multicloud/internal/config"
	"multicloud/internal/provider/registry"
	"multicloud/internal/runner"
	"multicloud/pkg/cloud"
	"multicloud/pkg/provision"
)

type Factory struct {
	cfg    *config.Config
	run    runner.Runner
	logger *slog.Logger
}

func NewFactory(cfg *config.Config, run runner.Runner, logger *slog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		run:    run,
		logger: logger,
	}
}

// Returns a list of providers that are registered and configured
func (f *Factory) GetConfiguredProviders() []string {
	var configuredProviders []string
	allRegistrations := registry.GetAllRegistrations()

	for name, registration := range allRegistrations {
		if registration.ConfigCheck(f.cfg) {
			configuredProviders = append(configuredProviders, name)
		}
	}
	sort.Strings(configuredProviders)
	return configuredProviders
}

// Checks if a specific provider is registered and configured
func (f *Factory) IsConfigured(providerName string) bool {
	registration, exists := registry.GetRegistration(providerName)
	if !exists {
		return false
	}
	return registration.ConfigCheck(f.cfg)
}

// Returns the persisted defaults for a provider as platform settings.
func (f *Factory) SettingsFor(p provision.Provider) cloud.Settings {
	switch p {
	case provision.AWS:
		return cloud.Settings{Region: f.cfg.AWS.Region}
	case provision.Azure:
		return cloud.Settings{Location: f.cfg.Azure.Location}
	case provision.GCP:
		return cloud.Settings{
			Project: f.cfg.GCP.Project,
			Region:  f.cfg.GCP.Region,
			Zone:    f.cfg.GCP.Zone,
		}
	}
	return cloud.Settings{}
}

// Initializes and returns the platform client for the specified provider
func (f *Factory) GetPlatform(ctx context.Context, providerName string, settings cloud.Settings) (cloud.Platform, error) {
	normalizedName := strings.ToLower(providerName)
	providerLogger := f.logger.With("provider", normalizedName)

	registration, exists := registry.GetRegistration(normalizedName)

	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s. Supported providers are: %v", providerName, registry.GetSupportedProviders())
	}

	if !registration.ConfigCheck(f.cfg) {
		return nil, fmt.Errorf("provider '%s' is not configured. Use 'multicloud config set %s.<key> <value>' (e.g., 'gcp.project')", normalizedName, normalizedName)
	}

	// Dynamically initialize the provider using the registered initializer function
	client, err := registration.Initializer(ctx, settings, f.run, providerLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %s: %w", normalizedName, err)
	}

	return client, nil
}
