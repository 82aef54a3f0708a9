// Package container wires the application's services together so entrypoints
// share one construction path.
package container

import (
	"gopower/adapters/export"
	"gopower/domain/power"
	"gopower/internal/config"
	"gopower/internal/sensitivity"
	"gopower/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Core services
	Calculator ports.Calculator
	Exporter   ports.Exporter
	Sweeper    *sensitivity.Sweeper
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	engine := power.NewEngine()

	return &Container{
		Config:     cfg,
		Calculator: engine,
		Exporter:   export.NewService(cfg.Export.ToolName),
		Sweeper:    sensitivity.NewSweeper(engine, cfg.Sensitivity),
	}, nil
}
