package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

type workDoneMsg struct {
	err error
}

// workLabelMsg replaces the label while work is still running.
type workLabelMsg string

type workSpinnerModel struct {
	spinner spinner.Model
	label   string
	work    tea.Cmd
	err     error
	done    bool
}

func newWorkSpinnerModel(label string, work tea.Cmd) workSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return workSpinnerModel{
		spinner: s,
		label:   label,
		work:    work,
	}
}

func (m workSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m workSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case workLabelMsg:
		if msg != "" {
			m.label = string(msg)
		}
		return m, nil
	case workDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m workSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// progressFunc lets work relabel the spinner as it moves through its steps.
type progressFunc func(label string)

// runWithSpinner runs work directly unless output is an interactive terminal and
// the caller did not ask for JSON.
func runWithSpinner(ctx context.Context, output io.Writer, label string, asJSON bool, work func(context.Context, progressFunc) error) error {
	if asJSON || !isTerminal(output) {
		return work(ctx, func(string) {})
	}

	var p *tea.Program
	workCmd := func() tea.Msg {
		return workDoneMsg{err: work(ctx, func(next string) {
			p.Send(workLabelMsg(next))
		})}
	}

	p = tea.NewProgram(
		newWorkSpinnerModel(label, workCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(workSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

// stageLabel maps a transfer stage to the text shown next to the spinner. Stages
// that end a run map to "".
func stageLabel(stage domain.TransferStage) string {
	switch stage {
	case domain.StageAuthenticating:
		return "Logging in..."
	case domain.StageAuthenticated:
		return "Reading ownership cookie..."
	case domain.StageCookieLocated:
		return "Decoding ownership cookie..."
	case domain.StageCookieTransform:
		return "Rewriting ownership cookie..."
	case domain.StageCookieInstalled:
		return "Submitting transfer..."
	default:
		return ""
	}
}

func isTerminal(output io.Writer) bool {
	file, ok := output.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
