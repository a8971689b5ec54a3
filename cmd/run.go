package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/venvctl/internal/application"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		envOverrides []string
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Run a command inside the activated environment",
		Long:  "Run a command as if the environment had been activated in an interactive shell: the environment's executable directory leads the search path and VIRTUAL_ENV is set. A missing environment is provisioned first.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("run requires a command after '--'")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseEnvOverrides(envOverrides)
			if err != nil {
				return err
			}

			opts := application.RunOptions{
				DiscardOutput: true,
				Env:           overrides,
				Timeout:       timeout,
			}

			_, err = a.runner.RunWith(cmd.Context(), opts, args[0], args[1:]...)
			return err
		},
	}

	cmd.Flags().StringArrayVar(&envOverrides, "env", nil, "Extra KEY=VALUE environment entries (highest precedence, repeatable)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Kill the command after this duration (0 = no limit)")

	return cmd
}

func parseEnvOverrides(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	overrides := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --env entry %q, expected KEY=VALUE", entry)
		}
		overrides[key] = value
	}

	return overrides, nil
}
