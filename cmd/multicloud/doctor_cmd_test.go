package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multicloud/internal/service"
	"multicloud/pkg/cloud"
	"multicloud/pkg/formatter"
	"multicloud/pkg/provision"
)

type noProvidersFactory struct{}

func (noProvidersFactory) GetPlatform(ctx context.Context, providerName string, settings cloud.Settings) (cloud.Platform, error) {
	return nil, nil
}

func (noProvidersFactory) GetConfiguredProviders() []string { return nil }

func (noProvidersFactory) SettingsFor(p provision.Provider) cloud.Settings { return cloud.Settings{} }

type scriptedRunner struct {
	failing map[string]error
}

func (r *scriptedRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error) {
	if err, ok := r.failing[name]; ok {
		return "", err
	}
	return name + " v3.100.0\n", nil
}

func newDoctorTestApp(run *scriptedRunner) *appContainer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &appContainer{
		DoctorService:   service.NewDoctorService(noProvidersFactory{}, run, logger),
		DeployFormatter: formatter.NewDeployFormatter(),
		Logger:          logger,
	}
}

func TestDoctorCmdSucceedsWhenAllChecksPass(t *testing.T) {
	cmd := newDoctorCmd(newDoctorTestApp(&scriptedRunner{}))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	assert.NoError(t, cmd.Execute())
}

func TestDoctorCmdFailsWhenAnyCheckFails(t *testing.T) {
	run := &scriptedRunner{failing: map[string]error{
		"pulumi": &provision.ExternalToolError{Tool: "pulumi", ExitCode: 127, Stderr: "not found"},
	}}
	cmd := newDoctorCmd(newDoctorTestApp(run))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 checks failed")
}
