package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	recycler "github.com/grindlemire/go-recycler"
)

// runInteractive implements the run subcommand.
func runInteractive(args []string) error {
	cfg, err := parseConfig("run", args, os.Stderr)
	if err != nil {
		return err
	}
	m, err := newModel(cfg)
	if err != nil {
		return err
	}

	_, runErr := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err := m.close(); runErr == nil {
		runErr = err
	}
	if runErr == nil {
		runErr = m.err
	}
	return runErr
}

// runSnapshot implements the snapshot subcommand. The viewport is the
// terminal size when stdout is a terminal, 80x24 otherwise.
func runSnapshot(args []string) error {
	cfg, err := parseConfig("snapshot", args, os.Stderr)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
	}

	out, err := snapshot(cfg, width, height)
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(out + "\n")
	return err
}

// snapshot renders a single frame of a list sized width x height.
func snapshot(cfg demoConfig, width, height int) (string, error) {
	m, err := newModel(cfg, recycler.WithLayoutSize(recycler.Dimension{
		Width:  float64(width),
		Height: float64(max(1, height-1)),
	}))
	if err != nil {
		return "", err
	}
	m.width, m.height = width, max(1, height-1)
	if err := m.tick(); err != nil {
		m.close()
		return "", err
	}
	view := m.View()
	return view, m.close()
}
