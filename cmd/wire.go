package cmd

import (
	"fmt"

	"github.com/bnema/venvctl/internal/adapters/configdoc"
	"github.com/bnema/venvctl/internal/adapters/manifest"
	"github.com/bnema/venvctl/internal/adapters/pip"
	"github.com/bnema/venvctl/internal/adapters/venv"
	"github.com/bnema/venvctl/internal/application"
	"github.com/bnema/venvctl/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	store     *application.Store
	runner    *application.Runner
	checker   *application.Checker
	inspector ports.PackageInspector
	log       *zap.Logger
}

type settings struct {
	envPath     string
	interpreter string
}

func loadSettings() settings {
	v := viper.New()
	v.SetDefault("path", ".venv")
	v.SetDefault("interpreter", venv.DefaultInterpreter())
	v.SetEnvPrefix("VENVCTL")
	v.AutomaticEnv()

	return settings{
		envPath:     v.GetString("path"),
		interpreter: v.GetString("interpreter"),
	}
}

func wireApp(envPath, interpreter string, logger *zap.Logger) (*app, error) {
	builder := venv.NewBuilder(interpreter, logger)
	marker := manifest.NewRecorder(builder.Interpreter())

	store, err := application.NewStore(envPath, builder, marker, logger)
	if err != nil {
		return nil, fmt.Errorf("wire environment store: %w", err)
	}

	runner := application.NewRunner(store, logger)
	inspector := pip.NewInspector(runner)
	checker := application.NewChecker(store, runner, inspector, configdoc.Loader{}, logger)

	return &app{
		store:     store,
		runner:    runner,
		checker:   checker,
		inspector: inspector,
		log:       logger,
	}, nil
}
