package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxInputSize caps a single line of user input. Override with
// the NOVA_MAX_INPUT_SIZE environment variable.
const DefaultMaxInputSize = 4096

const envMaxInputSize = "NOVA_MAX_INPUT_SIZE"

var (
	// ErrInputTooLarge is returned when a line exceeds the input size limit.
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")

	// ErrInvalidUTF8 is returned when a line is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input contains invalid UTF-8")
)

func maxInputSize() int {
	raw := os.Getenv(envMaxInputSize)
	if raw == "" {
		return DefaultMaxInputSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultMaxInputSize
	}
	return n
}

// SanitizeInput validates a line read from the terminal and strips
// control characters. Newlines, tabs and carriage returns survive;
// everything else below 0x20 and DEL is dropped.
func SanitizeInput(input string) (string, error) {
	limit := maxInputSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	needsFilter := false
	for _, r := range input {
		if isDisallowedControl(r) {
			needsFilter = true
			break
		}
	}
	if !needsFilter {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if isDisallowedControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func isDisallowedControl(r rune) bool {
	switch r {
	case '\n', '\t', '\r':
		return false
	}
	return r < 0x20 || r == 0x7f
}
