package mcp

import (
	"log/slog"

	"github.com/ludo-technologies/laast/internal/config"
)

func NewTestDependencies(cfg *config.Config, path string, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		config:     cfg,
		configPath: path,
		logger:     logger,
	}
}
