package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision the environment",
		Long:  "Provision the environment at the configured root. Creation is additive and idempotent unless --clear is given, which deletes any existing contents first.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runProvisionSpinner(cmd.Context(), cmd.OutOrStdout(), "Provisioning environment...",
				func(ctx context.Context) error {
					return a.store.Create(ctx, clear)
				})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "environment ready at %s\n", a.store.Path())
			return err
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Delete existing contents before creating")

	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete the environment",
		Long:  "Delete the environment's entire subtree. Removing an absent environment is a no-op.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.Remove(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "environment removed from %s\n", a.store.Path())
			return err
		},
	}
}

func newFlushCmd(a *app) *cobra.Command {
	var noClear bool

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Rebuild the environment, recovering from corrupt state",
		Long:  "Recreate the environment. The first attempt clears existing contents unless --no-clear is given; if it fails a second attempt always clears, recovering from partial or corrupt state.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runProvisionSpinner(cmd.Context(), cmd.OutOrStdout(), "Rebuilding environment...",
				func(ctx context.Context) error {
					return a.store.Flush(ctx, !noClear)
				})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "environment rebuilt at %s\n", a.store.Path())
			return err
		},
	}

	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Keep existing contents on the first attempt")

	return cmd
}
