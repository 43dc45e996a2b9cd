package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds an input line, in bytes.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable overriding DefaultMaxInputSize.
	EnvMaxInputSize = "CLIC_MAX_INPUT_SIZE"
)

var (
	// ErrInputTooLarge is returned for lines longer than the configured limit.
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	// ErrInvalidUTF8 is returned for lines that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput rejects lines over the size limit or with invalid UTF-8, and
// strips control characters other than tab, newline and carriage return.
// ESC, NUL and BEL would otherwise reach the logs and the terminal.
func SanitizeInput(input string) (string, error) {
	limit := maxInputSize()
	if len(input) > limit {
		// Rejected rather than truncated: a truncated line could name a different command.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(input, unsafeControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if unsafeControl(r) {
			return -1
		}
		return r
	}, input), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
