package gcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"multicloud/internal/config"
	"multicloud/internal/provider/registry"
	"multicloud/internal/runner"
	"multicloud/pkg/cloud"
	"multicloud/pkg/provision"
)

func init() {
	registry.RegisterProvider("gcp", registry.ProviderRegistration{
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// Checks if the GCP project ID is set
func isConfigured(cfg *config.Config) bool {
	return cfg.GCP.Project != ""
}

func initialize(ctx context.Context, settings cloud.Settings, run runner.Runner, logger *slog.Logger) (cloud.Platform, error) {
	return NewGCPPlatform(ctx, settings.Project, settings.Region, logger)
}

type GCPPlatform struct {
	client    *gcpstorage.Client
	projectID string
	region    string
	logger    *slog.Logger
}

var _ cloud.Platform = (*GCPPlatform)(nil)

func NewGCPPlatform(ctx context.Context, projectID, region string, logger *slog.Logger) (*GCPPlatform, error) {
	client, err := gcpstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	return &GCPPlatform{
		client:    client,
		projectID: projectID,
		region:    region,
		logger:    logger,
	}, nil
}

func (g *GCPPlatform) ProviderName() provision.Provider {
	return provision.GCP
}

// Exercises application default credentials with a real call; creating the
// client alone does not touch the network.
func (g *GCPPlatform) CheckCredentials(ctx context.Context) error {
	it := g.client.Buckets(ctx, g.projectID)
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return &provision.AuthenticationError{Provider: provision.GCP, Err: err}
	}

	g.logger.Debug("GCP credentials verified", "project", g.projectID)
	return nil
}

func (g *GCPPlatform) EnsureStateBackend(ctx context.Context, name string) error {
	bucket := g.client.Bucket(name)

	_, err := bucket.Attrs(ctx)
	if err == nil {
		g.logger.Info("State bucket already exists", "bucket", name)
		return nil
	}
	if !errors.Is(err, gcpstorage.ErrBucketNotExist) {
		return fmt.Errorf("checking state bucket %s: %w", name, err)
	}

	attrs := &gcpstorage.BucketAttrs{
		Location:                 g.region,
		UniformBucketLevelAccess: gcpstorage.UniformBucketLevelAccess{Enabled: true},
	}
	if err := bucket.Create(ctx, g.projectID, attrs); err != nil {
		return fmt.Errorf("creating state bucket %s: %w", name, err)
	}

	g.logger.Info("Created state bucket", "bucket", name, "location", g.region)
	return nil
}

func (g *GCPPlatform) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
