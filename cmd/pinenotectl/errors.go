package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// errorLine renders err as "Error: <message>", red when colour is enabled.
func errorLine(w io.Writer, err error, colorMode string) string {
	line := "Error: " + err.Error()
	if !shouldColorize(w, colorMode) {
		return line
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return r.NewStyle().Foreground(lipgloss.Color("1")).Render(line)
}

func shouldColorize(w io.Writer, colorMode string) bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	}

	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
