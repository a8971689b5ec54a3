package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/venvctl/internal/application"
	"github.com/spf13/cobra"
)

// errInconsistent maps a false check verdict to a non-zero process exit.
var errInconsistent = errors.New("environment is inconsistent with configuration")

func newCheckCmd(a *app) *cobra.Command {
	var (
		configPath    string
		skipSelfCheck bool
		minPython     string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Audit the environment against a declarative configuration",
		Long:  "Verify required files and package versions against the platform defaults, optionally merged under a configuration document (.json, .toml, .yaml). The verdict is the exit code; reasons go to the log.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := application.CheckOptions{
				SkipSelfCheck:         skipSelfCheck,
				MinInterpreterVersion: minPython,
			}

			var consistent bool
			if configPath != "" {
				consistent = a.checker.CheckFile(cmd.Context(), configPath, opts)
			} else {
				consistent = a.checker.Check(cmd.Context(), nil, opts)
			}

			if !consistent {
				return errInconsistent
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "environment is consistent with configuration")
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Declarative configuration document to merge over the defaults")
	cmd.Flags().BoolVar(&skipSelfCheck, "skip-self-check", false, "Skip the package manager's dependency integrity check")
	cmd.Flags().StringVar(&minPython, "min-python", "", "Minimum interpreter version (default 3.8)")

	return cmd
}
