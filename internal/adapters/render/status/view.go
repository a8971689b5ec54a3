package status

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Render produces the terminal view of an environment report.
func Render(report Report, opts RenderOptions) string {
	return renderView(report, opts, newStyles())
}

func renderView(report Report, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Environment"),
		s.header.Render(report.Path),
	}

	if !report.Exists {
		lines = append(lines, s.bad.Render("not provisioned"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.ok.Render("provisioned"))

	if section := renderManifest(report.Manifest, opts, s); section != "" {
		lines = append(lines, s.section.Render(section))
	}
	lines = append(lines, s.section.Render(renderMarkers(report.Markers, s)))
	lines = append(lines, s.section.Render(renderPackages(report.Packages, s)))

	if report.Consistent != nil {
		verdict := s.bad.Render("inconsistent")
		if *report.Consistent {
			verdict = s.ok.Render("consistent")
		}
		lines = append(lines, s.section.Render(verdict))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderManifest(info *ManifestInfo, opts RenderOptions, s styles) string {
	if info == nil {
		return ""
	}

	parts := []string{
		s.key.Render("interpreter: ") + s.detail.Render(info.Interpreter),
	}

	if !info.CreatedAt.IsZero() {
		created := info.CreatedAt.Format("2006-01-02 15:04:05 MST")
		if !opts.Now.IsZero() {
			age := opts.Now.Sub(info.CreatedAt).Round(time.Second)
			created = fmt.Sprintf("%s (%s ago)", created, age)
		}
		parts = append(parts, s.key.Render("created: ")+s.meta.Render(created))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderMarkers(markers []MarkerStatus, s styles) string {
	if len(markers) == 0 {
		return s.empty.Render("No activation markers declared.")
	}

	parts := make([]string, 0, len(markers))
	for _, marker := range markers {
		state := s.ok.Render("present")
		if !marker.Present {
			state = s.bad.Render("missing")
			if !marker.Required {
				state = s.empty.Render("absent")
			}
		}
		parts = append(parts, s.key.Render(marker.Path)+" "+state)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderPackages(packages map[string]string, s styles) string {
	if len(packages) == 0 {
		return s.empty.Render("No package listing available.")
	}

	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := []string{s.header.Render(fmt.Sprintf("packages: %d", len(names)))}
	for _, name := range names {
		parts = append(parts, s.key.Render(name)+" "+s.detail.Render(packages[name]))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
