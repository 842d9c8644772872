package main

import (
	"log/slog"

	"multicloud/internal/config"
	"multicloud/internal/provider/factory"
	"multicloud/internal/runner"
	"multicloud/internal/service"
	"multicloud/pkg/formatter"
)

// appContainer holds all the shared dependencies for the application
// This includes configuration, services, formatters, and the logger
type appContainer struct {
	Config          *config.Config
	ConfigManager   *config.ConfigManager
	ProviderFactory *factory.Factory
	DeployService   *service.DeployService
	DoctorService   *service.DoctorService
	DeployFormatter *formatter.DeployFormatter
	Runner          runner.Runner
	Logger          *slog.Logger
	LogLevel        *slog.LevelVar
}

// Creates and initializes a new application container
func newApp(logger *slog.Logger, level *slog.LevelVar) (*appContainer, error) {
	cfgManager, err := config.NewConfigManager()
	if err != nil {
		return nil, err
	}

	cfg, err := cfgManager.LoadConfig()
	if err != nil {
		return nil, err
	}

	run := runner.NewExecRunner(logger)
	providerFactory := factory.NewFactory(cfg, run, logger)

	pulumi := runner.NewPulumi(run, logger)
	kubectl := runner.NewKubectl(run, logger)

	deployService := service.NewDeployService(cfg, providerFactory, pulumi, kubectl, logger)
	doctorService := service.NewDoctorService(providerFactory, run, logger)
	deployFormatter := formatter.NewDeployFormatter()

	return &appContainer{
		Config:          cfg,
		ConfigManager:   cfgManager,
		ProviderFactory: providerFactory,
		DeployService:   deployService,
		DoctorService:   doctorService,
		DeployFormatter: deployFormatter,
		Runner:          run,
		Logger:          logger,
		LogLevel:        level,
	}, nil
}
