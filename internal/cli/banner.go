package cli

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// banner writes the ASCII art banner with a gradient, degrading to
// plain text on dumb terminals.
func banner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		art   string
		color string
	}{
		{"  _   _  ______      __      ", "#818cf8"},
		{" | \\ | |/ __ \\ \\    / /\\     ", "#a78bfa"},
		{" |  \\| | |  | \\ \\  / /  \\    ", "#c084fc"},
		{" | . ` | |  | |\\ \\/ / /\\ \\   ", "#e879f9"},
		{" | |\\  | |__| | \\  / ____ \\  ", "#f472b6"},
		{" |_| \\_|\\____/   \\/_/    \\_\\ ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, line := range lines {
		fmt.Fprintln(w, termenv.String(line.art).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
