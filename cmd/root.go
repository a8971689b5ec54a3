package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	settings := loadSettings()

	var (
		envPath     string
		interpreter string
		verbose     bool
	)

	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "venvctl",
		Short:         "venvctl: provision, run inside, and audit Python virtual environments",
		Long:          "venvctl provisions an isolated Python environment, runs commands inside it as if it had been activated interactively, and verifies it against a declarative configuration of required files and package versions.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}

			wired, err := wireApp(envPath, interpreter, logger)
			if err != nil {
				return err
			}
			*a = *wired

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&envPath, "path", settings.envPath, "Environment root directory")
	rootCmd.PersistentFlags().StringVar(&interpreter, "interpreter", settings.interpreter, "Host interpreter used to seed environments")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCreateCmd(a),
		newRemoveCmd(a),
		newFlushCmd(a),
		newRunCmd(a),
		newCheckCmd(a),
		newStatusCmd(a),
	)

	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return config.Build()
}
