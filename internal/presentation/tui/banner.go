package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  __                     _        _       _     ",
	" / _|___ _ __ ___  ___| | _____| |_ ___| |__  ",
	"| |_/ __| '_ ` _ \\/ __| |/ / _ \\ __/ __| '_ \\ ",
	"|  _\\__ \\ | | | | \\__ \\   <  __/ || (__| | | |",
	"|_| |___/_| |_| |_|___/_|\\_\\___|\\__\\___|_| |_|",
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

// PrintBanner writes the console banner with a gradient in profile p.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, p.String(line).Foreground(p.Color(bannerColors[i%len(bannerColors)])))
	}
	fmt.Fprintf(w, "%s\n\n", p.String("  v"+version).Faint())
}
