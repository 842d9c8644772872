package runner

import (
	"bytes"
	"context"
	"log/slog"
)

// Kubectl applies rendered manifests to the cluster the current kubeconfig
// context points at.
type Kubectl struct {
	run    Runner
	logger *slog.Logger
}

func NewKubectl(run Runner, logger *slog.Logger) *Kubectl {
	return &Kubectl{
		run:    run,
		logger: logger.With("tool", "kubectl"),
	}
}

// Apply pipes a manifest to kubectl apply. The manifest is applied verbatim.
func (k *Kubectl) Apply(ctx context.Context, manifest []byte) error {
	k.logger.Debug("Applying manifest", "bytes", len(manifest))

	_, err := k.run.Run(ctx, bytes.NewReader(manifest), "kubectl", "apply", "-f", "-")
	return err
}
