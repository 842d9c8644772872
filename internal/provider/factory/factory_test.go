package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multicloud/internal/config"
	"multicloud/internal/provider/registry"
	"multicloud/internal/runner"
	"multicloud/pkg/cloud"
	"multicloud/pkg/provision"
)

type stubPlatform struct{}

func (stubPlatform) ProviderName() provision.Provider { return provision.AWS }

func (stubPlatform) CheckCredentials(ctx context.Context) error { return nil }

func (stubPlatform) EnsureStateBackend(ctx context.Context, _ string) error { return nil }

func (stubPlatform) Close() error { return nil }

func init() {
	registry.RegisterProvider("stubcloud", registry.ProviderRegistration{
		ConfigCheck: func(cfg *config.Config) bool { return cfg.AWS.Region != "" },
		Initializer: func(ctx context.Context, settings cloud.Settings, run runner.Runner, logger *slog.Logger) (cloud.Platform, error) {
			return stubPlatform{}, nil
		},
	})
	registry.RegisterProvider("brokencloud", registry.ProviderRegistration{
		ConfigCheck: func(cfg *config.Config) bool { return true },
		Initializer: func(ctx context.Context, settings cloud.Settings, run runner.Runner, logger *slog.Logger) (cloud.Platform, error) {
			return nil, errors.New("initializer blew up")
		},
	})
}

func newTestFactory(cfg *config.Config) *Factory {
	return NewFactory(cfg, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetPlatformUnsupportedProvider(t *testing.T) {
	f := newTestFactory(&config.Config{})

	_, err := f.GetPlatform(context.Background(), "nosuchcloud", cloud.Settings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestGetPlatformNotConfigured(t *testing.T) {
	f := newTestFactory(&config.Config{})

	_, err := f.GetPlatform(context.Background(), "stubcloud", cloud.Settings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
	assert.Contains(t, err.Error(), "multicloud config set")
}

func TestGetPlatformConfigured(t *testing.T) {
	cfg := &config.Config{}
	cfg.AWS.Region = "us-east-1"
	f := newTestFactory(cfg)

	platform, err := f.GetPlatform(context.Background(), "StubCloud", cloud.Settings{})
	require.NoError(t, err)
	assert.NotNil(t, platform)
}

func TestGetPlatformInitializerFailure(t *testing.T) {
	f := newTestFactory(&config.Config{})

	_, err := f.GetPlatform(context.Background(), "brokencloud", cloud.Settings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize provider")
}

func TestGetConfiguredProviders(t *testing.T) {
	cfg := &config.Config{}
	f := newTestFactory(cfg)
	assert.NotContains(t, f.GetConfiguredProviders(), "stubcloud")

	cfg.AWS.Region = "us-east-1"
	assert.Contains(t, f.GetConfiguredProviders(), "stubcloud")
	assert.True(t, f.IsConfigured("stubcloud"))
}

func TestSettingsFor(t *testing.T) {
	cfg := &config.Config{}
	cfg.GCP.Project = "acme-prod-123"
	cfg.GCP.Region = "europe-west1"
	cfg.GCP.Zone = "europe-west1-b"
	f := newTestFactory(cfg)

	settings := f.SettingsFor(provision.GCP)
	assert.Equal(t, "acme-prod-123", settings.Project)
	assert.Equal(t, "europe-west1", settings.Region)
	assert.Equal(t, "europe-west1-b", settings.Zone)
}
