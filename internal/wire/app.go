package wire

import (
	"context"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/domid/internal/config"
	"github.com/mithrel/domid/internal/lint"
	"github.com/mithrel/domid/internal/logging"
)

// App aggregates the services the commands use.
type App struct {
	Cfg    *viper.Viper
	Log    *zap.Logger
	Linter *lint.Runner
}

// BuildApp validates the resolved configuration and wires dependencies.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, err
	}
	logger, err := logging.FromConfig(v)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", zap.String("file", v.ConfigFileUsed()))
	return &App{
		Cfg:    v,
		Log:    logger,
		Linter: lint.NewRunner(logger.Named("lint")),
	}, nil
}

// LintOptions resolves the lint.* options for patterns.
func (a *App) LintOptions(dir string, patterns []string) lint.Options {
	sev := make(map[string]lint.Severity, len(config.Rules))
	for _, r := range config.Rules {
		if s, err := lint.ParseSeverity(a.Cfg.GetString(config.SeverityKey(r))); err == nil {
			sev[r] = s
		}
	}
	return lint.Options{
		Dir:       dir,
		Patterns:  patterns,
		Tests:     a.Cfg.GetBool("lint.tests"),
		Templates: a.Cfg.GetStringSlice("lint.templates"),
		Sinks:     a.Cfg.GetStringSlice("lint.sinks"),
		Catalog:   a.Cfg.GetString("lint.catalog"),
		Severity:  sev,
	}
}
