package service

import (
	"context"
	"fmt"
	"log/slog"

	"multicloud/internal/config"
	"multicloud/pkg/cloud"
	"multicloud/pkg/manifest"
	"multicloud/pkg/provision"
)

// PlatformFactory initializes per-provider platform clients. Satisfied by
// *factory.Factory.
type PlatformFactory interface {
	GetPlatform(ctx context.Context, providerName string, settings cloud.Settings) (cloud.Platform, error)
	GetConfiguredProviders() []string
	SettingsFor(p provision.Provider) cloud.Settings
}

// InfraTool drives the infrastructure-as-code tool. Satisfied by
// *runner.Pulumi.
type InfraTool interface {
	Up(ctx context.Context, workDir, stack string, config map[string]string) (string, error)
	Preview(ctx context.Context, workDir, stack string, config map[string]string) (string, error)
	Destroy(ctx context.Context, workDir, stack string) (string, error)
}

// ClusterTool applies manifests to a cluster. Satisfied by *runner.Kubectl.
type ClusterTool interface {
	Apply(ctx context.Context, manifest []byte) error
}

// Result describes a completed deployment pipeline run.
type Result struct {
	Config           *provision.DeploymentConfig
	Template         provision.Template
	Output           string
	ManifestsApplied bool
}

// DeployService runs the deployment pipeline: resolve input, select the
// template, verify credentials, invoke the infrastructure tool, and for
// Kubernetes targets apply the two cluster manifests. Each invocation is a
// single sequential pipeline; the first failure aborts all subsequent steps.
type DeployService struct {
	cfg             *config.Config
	platformFactory PlatformFactory
	infra           InfraTool
	cluster         ClusterTool
	logger          *slog.Logger
}

func NewDeployService(cfg *config.Config, platformFactory PlatformFactory, infra InfraTool, cluster ClusterTool, logger *slog.Logger) *DeployService {
	return &DeployService{
		cfg:             cfg,
		platformFactory: platformFactory,
		infra:           infra,
		cluster:         cluster,
		logger:          logger.With("service", "DeployService"),
	}
}

// Resolve turns raw key-value input into a validated DeploymentConfig,
// applying the persisted per-provider defaults.
func (s *DeployService) Resolve(input map[string]string) (*provision.DeploymentConfig, error) {
	return provision.Resolve(input, s.defaultsFor)
}

func (s *DeployService) Deploy(ctx context.Context, input map[string]string) (*Result, error) {
	dc, err := s.Resolve(input)
	if err != nil {
		return nil, err
	}

	tmpl := provision.SelectTemplate(dc)
	s.logger.Info("Resolved deployment", "template", tmpl.ID, "app", dc.AppName)

	if err := s.checkCredentials(ctx, dc); err != nil {
		return nil, err
	}

	out, err := s.infra.Up(ctx, tmpl.WorkDir, stackName(dc), dc.StackConfig())
	if err != nil {
		s.logger.Error("Infrastructure provisioning failed", "template", tmpl.ID, "error", err)
		return nil, err
	}

	result := &Result{Config: dc, Template: tmpl, Output: out}

	if tmpl.Kind == provision.KindKubernetes {
		if err := s.applyManifests(ctx, dc); err != nil {
			return nil, err
		}
		result.ManifestsApplied = true
	}

	return result, nil
}

func (s *DeployService) Preview(ctx context.Context, input map[string]string) (*Result, error) {
	dc, err := s.Resolve(input)
	if err != nil {
		return nil, err
	}

	tmpl := provision.SelectTemplate(dc)
	s.logger.Info("Previewing deployment", "template", tmpl.ID, "app", dc.AppName)

	if err := s.checkCredentials(ctx, dc); err != nil {
		return nil, err
	}

	out, err := s.infra.Preview(ctx, tmpl.WorkDir, stackName(dc), dc.StackConfig())
	if err != nil {
		return nil, err
	}

	return &Result{Config: dc, Template: tmpl, Output: out}, nil
}

// Destroy tears down a previously provisioned stack. Cleanup is a separate,
// manually invoked operation; Deploy never rolls back.
func (s *DeployService) Destroy(ctx context.Context, input map[string]string) (*Result, error) {
	dc, err := s.Resolve(input)
	if err != nil {
		return nil, err
	}

	tmpl := provision.SelectTemplate(dc)

	if err := s.checkCredentials(ctx, dc); err != nil {
		return nil, err
	}

	out, err := s.infra.Destroy(ctx, tmpl.WorkDir, stackName(dc))
	if err != nil {
		s.logger.Error("Infrastructure teardown failed", "template", tmpl.ID, "error", err)
		return nil, err
	}

	return &Result{Config: dc, Template: tmpl, Output: out}, nil
}

// InitBackend provisions the state backend bucket or container for a provider.
func (s *DeployService) InitBackend(ctx context.Context, providerName, bucket string) error {
	p, err := provision.ParseProvider(providerName)
	if err != nil {
		return err
	}
	if bucket == "" {
		return &provision.ConfigurationError{
			Field:    "bucket",
			Expected: "a bucket or container name",
		}
	}

	platform, err := s.platformFactory.GetPlatform(ctx, string(p), s.platformFactory.SettingsFor(p))
	if err != nil {
		return err
	}
	defer platform.Close()

	if err := platform.CheckCredentials(ctx); err != nil {
		return err
	}

	return platform.EnsureStateBackend(ctx, bucket)
}

func (s *DeployService) checkCredentials(ctx context.Context, dc *provision.DeploymentConfig) error {
	settings := cloud.Settings{
		Region:   dc.Region,
		Location: dc.Location,
		Project:  dc.Project,
		Zone:     dc.Zone,
	}

	platform, err := s.platformFactory.GetPlatform(ctx, string(dc.Provider), settings)
	if err != nil {
		return fmt.Errorf("error initializing provider: %w", err)
	}
	defer platform.Close()

	if err := platform.CheckCredentials(ctx); err != nil {
		s.logger.Error("Credential check failed", "provider", dc.Provider, "error", err)
		return err
	}
	return nil
}

// Applies the workload descriptor first, then the service descriptor. Order
// matters to callers observing the rollout.
func (s *DeployService) applyManifests(ctx context.Context, dc *provision.DeploymentConfig) error {
	image := dc.Image
	if image == "" {
		image = dc.AppName + ":latest"
	}

	workload, err := manifest.Workload(dc.AppName, image)
	if err != nil {
		return err
	}
	if err := s.cluster.Apply(ctx, workload); err != nil {
		s.logger.Error("Failed to apply workload manifest", "app", dc.AppName, "error", err)
		return err
	}

	svc, err := manifest.Service(dc.AppName)
	if err != nil {
		return err
	}
	if err := s.cluster.Apply(ctx, svc); err != nil {
		s.logger.Error("Failed to apply service manifest", "app", dc.AppName, "error", err)
		return err
	}

	s.logger.Info("Applied cluster manifests", "app", dc.AppName, "image", image)
	return nil
}

func (s *DeployService) defaultsFor(p provision.Provider) provision.Defaults {
	switch p {
	case provision.AWS:
		return provision.Defaults{
			Region:          s.cfg.AWS.Region,
			NamingMaxLength: s.cfg.AWS.Naming.MaxLength,
		}
	case provision.Azure:
		return provision.Defaults{
			Location:        s.cfg.Azure.Location,
			NamingMaxLength: s.cfg.Azure.Naming.MaxLength,
		}
	case provision.GCP:
		return provision.Defaults{
			Region:          s.cfg.GCP.Region,
			Project:         s.cfg.GCP.Project,
			Zone:            s.cfg.GCP.Zone,
			NamingMaxLength: s.cfg.GCP.Naming.MaxLength,
		}
	}
	return provision.Defaults{}
}

func stackName(dc *provision.DeploymentConfig) string {
	return dc.AppName
}
