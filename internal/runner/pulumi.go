package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Pulumi drives the pulumi CLI for a single stack. All operations select (or
// create) the stack and push the deployment's configuration variables before
// acting, so repeated invocations are safe.
type Pulumi struct {
	run    Runner
	logger *slog.Logger
}

func NewPulumi(run Runner, logger *slog.Logger) *Pulumi {
	return &Pulumi{
		run:    run,
		logger: logger.With("tool", "pulumi"),
	}
}

// Up provisions the stack and returns pulumi's stdout.
func (p *Pulumi) Up(ctx context.Context, workDir, stack string, config map[string]string) (string, error) {
	if err := p.prepareStack(ctx, workDir, stack, config); err != nil {
		return "", err
	}

	p.logger.Info("Provisioning infrastructure", "stack", stack, "workdir", workDir)
	return p.run.Run(ctx, nil, "pulumi", "up", "--yes", "--cwd", workDir, "--stack", stack)
}

// Preview shows the changes a deployment would make without applying them.
func (p *Pulumi) Preview(ctx context.Context, workDir, stack string, config map[string]string) (string, error) {
	if err := p.prepareStack(ctx, workDir, stack, config); err != nil {
		return "", err
	}

	return p.run.Run(ctx, nil, "pulumi", "preview", "--cwd", workDir, "--stack", stack)
}

// Destroy tears down all resources of the stack. Infrastructure cleanup is a
// separate, manually invoked operation; Deploy never calls this.
func (p *Pulumi) Destroy(ctx context.Context, workDir, stack string) (string, error) {
	p.logger.Info("Destroying infrastructure", "stack", stack, "workdir", workDir)
	return p.run.Run(ctx, nil, "pulumi", "destroy", "--yes", "--cwd", workDir, "--stack", stack)
}

// StackOutput reads a single stack output value.
func (p *Pulumi) StackOutput(ctx context.Context, workDir, stack, name string) (string, error) {
	out, err := p.run.Run(ctx, nil, "pulumi", "stack", "output", name, "--cwd", workDir, "--stack", stack)
	if err != nil {
		return "", fmt.Errorf("reading stack output %s: %w", name, err)
	}
	return out, nil
}

func (p *Pulumi) prepareStack(ctx context.Context, workDir, stack string, config map[string]string) error {
	if _, err := p.run.Run(ctx, nil, "pulumi", "stack", "select", "--create", "--cwd", workDir, "--stack", stack); err != nil {
		return fmt.Errorf("selecting stack %s: %w", stack, err)
	}

	// Sorted for deterministic invocation order
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if config[k] == "" {
			continue
		}
		if _, err := p.run.Run(ctx, nil, "pulumi", "config", "set", k, config[k], "--cwd", workDir, "--stack", stack); err != nil {
			return fmt.Errorf("setting stack config %s: %w", k, err)
		}
	}

	return nil
}
