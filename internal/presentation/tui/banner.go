package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the groundwork banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Earth tones, top to bottom.
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _ _ __ ___  _   _ _ __   __| |_      _____  _ __| | __", "#fde68a"},
		{"  / _` | '__/ _ \\| | | | '_ \\ / _` \\ \\ /\\ / / _ \\| '__| |/ /", "#fcd34d"},
		{" | (_| | | | (_) | |_| | | | | (_| |\\ V  V / (_) | |  |   < ", "#f59e0b"},
		{"  \\__, |_|  \\___/ \\__,_|_| |_|\\__,_| \\_/\\_/ \\___/|_|  |_|\\_\\", "#d97706"},
		{"  |___/", "#b45309"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  workspace provisioning "+version).Faint())
	fmt.Fprintln(w)
}
