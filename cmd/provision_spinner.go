package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	stepOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	stepFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	stepMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type provisionDoneMsg struct {
	err error
}

// provisionSpinnerModel animates a long-running provisioning step and leaves
// a one-line outcome summary behind when the step completes.
type provisionSpinnerModel struct {
	spinner spinner.Model
	label   string
	work    tea.Cmd
	start   time.Time
	elapsed time.Duration
	err     error
	done    bool
}

func newProvisionSpinnerModel(label string, work tea.Cmd) provisionSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)

	return provisionSpinnerModel{
		spinner: s,
		label:   label,
		work:    work,
		start:   time.Now(),
	}
}

func (m provisionSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m provisionSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case provisionDoneMsg:
		m.done = true
		m.err = msg.err
		m.elapsed = time.Since(m.start)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m provisionSpinnerModel) View() string {
	if !m.done {
		return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	}

	if m.err != nil {
		return fmt.Sprintf("%s %s\n", stepFailStyle.Render("✗"), m.label)
	}

	return fmt.Sprintf("%s %s %s\n",
		stepOKStyle.Render("✓"),
		m.label,
		stepMetaStyle.Render("("+m.elapsed.Round(time.Millisecond).String()+")"))
}

func runProvisionSpinner(ctx context.Context, output io.Writer, label string, work func(context.Context) error) error {
	workCmd := func() tea.Msg {
		return provisionDoneMsg{err: work(ctx)}
	}

	p := tea.NewProgram(
		newProvisionSpinnerModel(label, workCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(provisionSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
