// Package tokenizer splits a command line into argument tokens.
//
// Tokens are separated by unquoted whitespace. Single and double quotes group
// text (including whitespace) into one token and are removed from the result.
// A pair of adjacent quotes yields an explicit empty token.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnbalancedQuotes is returned when the input ends inside a quoted section.
var ErrUnbalancedQuotes = errors.New("unbalanced quotes")

// QuoteError reports the text that could not be tokenized.
type QuoteError struct {
	Text string
}

func (e *QuoteError) Error() string {
	return fmt.Sprintf("%s in %q", ErrUnbalancedQuotes, e.Text)
}

func (e *QuoteError) Unwrap() error {
	return ErrUnbalancedQuotes
}

type state int

const (
	normal state = iota
	inSingle
	inDouble
)

// Tokenize breaks text into tokens. Empty or blank input yields no tokens.
func Tokenize(text string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		st      = normal
		// closed is true when the previous character closed a quoted section.
		closed bool
	)

	for _, r := range text {
		switch st {
		case inSingle:
			if r == '\'' {
				closed = true
				st = normal
			} else {
				current.WriteRune(r)
			}
		case inDouble:
			if r == '"' {
				closed = true
				st = normal
			} else {
				current.WriteRune(r)
			}
		default:
			switch {
			case r == '\'':
				st = inSingle
			case r == '"':
				st = inDouble
			case IsSpace(r):
				if closed || current.Len() > 0 {
					tokens = append(tokens, current.String())
					current.Reset()
				}
			default:
				current.WriteRune(r)
			}
			closed = false
		}
	}

	if st != normal {
		return nil, &QuoteError{Text: text}
	}
	if closed || current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// OpenQuote reports whether text ends inside a quoted section.
func OpenQuote(text string) bool {
	st := normal
	for _, r := range text {
		switch st {
		case inSingle:
			if r == '\'' {
				st = normal
			}
		case inDouble:
			if r == '"' {
				st = normal
			}
		default:
			switch r {
			case '\'':
				st = inSingle
			case '"':
				st = inDouble
			}
		}
	}
	return st != normal
}

// IsSpace reports whether r separates tokens.
func IsSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
