package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/bnema/venvctl/internal/adapters/manifest"
	statusadapter "github.com/bnema/venvctl/internal/adapters/render/status"
	"github.com/bnema/venvctl/internal/application"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		withCheck  bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the environment's provisioning state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := buildStatusReport(cmd, a, withCheck)

			if jsonOutput {
				encoded, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("encode status report: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(),
				statusadapter.Render(report, statusadapter.RenderOptions{Now: time.Now()}))
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	cmd.Flags().BoolVar(&withCheck, "check", false, "Include a consistency check verdict")

	return cmd
}

func buildStatusReport(cmd *cobra.Command, a *app, withCheck bool) statusadapter.Report {
	report := statusadapter.Report{
		Path:    a.store.Path(),
		Exists:  a.store.Exists(),
		Markers: defaultMarkers(a),
	}

	if !report.Exists {
		return report
	}

	if m, err := manifest.Read(a.store.Path()); err == nil {
		report.Manifest = &statusadapter.ManifestInfo{
			CreatedAt:   m.Created(),
			Interpreter: m.Interpreter,
			Cleared:     m.Cleared,
		}
	}

	if a.store.Capabilities().Metadata.Available() {
		if installed, err := a.inspector.ListInstalled(cmd.Context()); err == nil {
			report.Packages = installed
		}
	}

	if withCheck {
		consistent := a.checker.Check(cmd.Context(), nil, application.CheckOptions{})
		report.Consistent = &consistent
	}

	return report
}

func defaultMarkers(a *app) []statusadapter.MarkerStatus {
	layout := a.store.Layout()
	root := a.store.Path()

	paths := []struct {
		path     string
		required bool
	}{
		{layout.ActivatePath(root), true},
		{layout.InterpreterPath(root), true},
	}

	markers := make([]statusadapter.MarkerStatus, 0, len(paths))
	for _, p := range paths {
		markers = append(markers, statusadapter.MarkerStatus{
			Path:     p.path,
			Required: p.required,
			Present:  fileExists(p.path),
		})
	}

	sort.Slice(markers, func(i, j int) bool { return markers[i].Path < markers[j].Path })

	return markers
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
