package render

import "strings"

// Buffer is an in-memory Surface. The zero value is ready to use.
type Buffer struct {
	lines []string
}

func (b *Buffer) Clear() {
	b.lines = b.lines[:0]
}

func (b *Buffer) WriteLine(line string) {
	b.lines = append(b.lines, line)
}

// Lines returns the accumulated lines. The slice is owned by the buffer and
// valid until the next Clear.
func (b *Buffer) Lines() []string {
	return b.lines
}

// String joins the lines with newlines, terminating the last one. An empty
// buffer yields the empty string.
func (b *Buffer) String() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}
