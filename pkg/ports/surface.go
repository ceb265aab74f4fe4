package ports

// Surface is the output device a renderer draws to. Implementations range
// from a plain stdout writer to a string buffer to a retained-mode TUI
// viewport. A renderer owns the surface for the duration of one render pass;
// implementations need not be safe for concurrent writers.
type Surface interface {
	// Clear resets the surface before a new document is drawn.
	Clear()

	// WriteLine appends one line of output. The line carries no trailing
	// newline; the surface decides how lines are joined or displayed.
	WriteLine(line string)
}
