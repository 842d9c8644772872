package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"multicloud/internal/runner"
	"multicloud/pkg/provision"
)

// CheckResult reports one doctor probe.
type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

// DoctorService probes the external tools and the configured providers'
// credentials so operators can diagnose a broken setup before deploying.
type DoctorService struct {
	platformFactory PlatformFactory
	run             runner.Runner
	logger          *slog.Logger
}

func NewDoctorService(platformFactory PlatformFactory, run runner.Runner, logger *slog.Logger) *DoctorService {
	return &DoctorService{
		platformFactory: platformFactory,
		run:             run,
		logger:          logger.With("service", "DoctorService"),
	}
}

// Run executes all probes concurrently and returns the results sorted by
// name. Probe failures are reported in the results, not as an error.
func (s *DoctorService) Run(ctx context.Context) []CheckResult {
	var (
		mu      sync.Mutex
		results []CheckResult
	)
	record := func(r CheckResult) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)

	tools := []struct {
		name string
		args []string
	}{
		{"pulumi", []string{"version"}},
		{"kubectl", []string{"version", "--client"}},
	}
	for _, tool := range tools {
		g.Go(func() error {
			out, err := s.run.Run(ctx, nil, tool.name, tool.args...)
			if err != nil {
				record(CheckResult{Name: "tool/" + tool.name, Detail: err.Error()})
				return nil
			}
			record(CheckResult{Name: "tool/" + tool.name, OK: true, Detail: firstLine(out)})
			return nil
		})
	}

	for _, name := range s.platformFactory.GetConfiguredProviders() {
		g.Go(func() error {
			checkName := "credentials/" + name

			platform, err := s.platformFactory.GetPlatform(ctx, name, s.platformFactory.SettingsFor(provision.Provider(name)))
			if err != nil {
				record(CheckResult{Name: checkName, Detail: err.Error()})
				return nil
			}
			defer platform.Close()

			if err := platform.CheckCredentials(ctx); err != nil {
				record(CheckResult{Name: checkName, Detail: err.Error()})
				return nil
			}
			record(CheckResult{Name: checkName, OK: true, Detail: "credentials resolved"})
			return nil
		})
	}

	// Probes report failures through results, never through the group
	if err := g.Wait(); err != nil {
		s.logger.Error("Doctor probes aborted", "error", err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
