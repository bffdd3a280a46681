package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	styleKey    = lipgloss.NewStyle().Bold(true)
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color(`10`))
	styleNo     = lipgloss.NewStyle().Foreground(lipgloss.Color(`9`))
	styleDim    = lipgloss.NewStyle().Faint(true)
)

const keyWidth = 16

func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, styleHeader.Render(title))
}

func printField(w io.Writer, key string, value any) {
	fmt.Fprintln(w, styleKey.Width(max(keyWidth, lipgloss.Width(key)+2)).Render(key)+fmt.Sprint(value))
}

func yesNo(ok bool) string {
	if ok {
		return styleOK.Render(`yes`)
	}
	return styleNo.Render(`no`)
}
