package mcp

import (
	"log/slog"

	"github.com/ludo-technologies/laast/app"
	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/config"
	"github.com/ludo-technologies/laast/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	config     *config.Config
	configPath string
	logger     *slog.Logger
}

// NewDependencies constructs the dependency set. A nil cfg makes every
// request discover .laast.toml from its own path, or load configPath when
// one is given.
func NewDependencies(cfg *config.Config, configPath string, logger *slog.Logger) *Dependencies {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dependencies{
		config:     cfg,
		configPath: configPath,
		logger:     logger,
	}
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// LoadConfig returns the fixed configuration snapshot, or loads one for dir
func (d *Dependencies) LoadConfig(dir string) (*config.Config, error) {
	if d.config != nil {
		return d.config, nil
	}
	return config.LoadConfig(d.configPath, dir)
}

// BuildCompareUseCase assembles a fresh CompareUseCase. Flags in explicit
// override the loaded configuration the same way CLI flags do.
func (d *Dependencies) BuildCompareUseCase(explicit map[string]bool) (*app.CompareUseCase, error) {
	compareService := service.NewCompareService(d.logger)
	compareService.SetProgressManager(service.NewNoopProgressManager())

	var loader domain.CompareConfigurationLoader
	if d.config != nil {
		loader = &fixedConfigLoader{cfg: d.config, flags: service.NewCompareConfigurationLoaderWithFlags(explicit)}
	} else {
		loader = service.NewCompareConfigurationLoaderWithFlags(explicit)
	}

	return app.NewCompareUseCaseBuilder().
		WithService(compareService).
		WithFormatter(service.NewCompareOutputFormatter()).
		WithConfigLoader(loader).
		Build()
}

// fixedConfigLoader serves a preloaded config instead of reading files
type fixedConfigLoader struct {
	cfg   *config.Config
	flags *service.CompareConfigurationLoaderWithFlags
}

func (l *fixedConfigLoader) LoadCompareConfig(configPath, corpusDir string) (*domain.CompareRequest, error) {
	return service.ConfigToCompareRequest(l.cfg)
}

func (l *fixedConfigLoader) GetDefaultCompareConfig() *domain.CompareRequest {
	return l.flags.GetDefaultCompareConfig()
}

func (l *fixedConfigLoader) MergeConfig(base, override *domain.CompareRequest) *domain.CompareRequest {
	return l.flags.MergeConfig(base, override)
}
