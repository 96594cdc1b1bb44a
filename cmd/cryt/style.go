package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#89b4fa")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a6e3a1"))

	bestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fab387")).
			Bold(true)
)

// printer decorates report fields, with styles only when enabled.
type printer struct {
	styled bool
}

// printer returns a printer that styles output written to a terminal,
// unless color is disabled.
func (c *cmd) printer() printer {
	f, ok := c.stdout.(*os.File)
	return printer{styled: ok && c.cfg.Color && term.IsTerminal(int(f.Fd()))}
}

func (p printer) label(s string) string {
	if !p.styled {
		return s
	}
	return labelStyle.Render(s)
}

func (p printer) key(key []byte) string {
	if !p.styled {
		return string(key)
	}
	return keyStyle.Render(string(key))
}

func (p printer) best(s string) string {
	if !p.styled {
		return s
	}
	return bestStyle.Render(s)
}
