package runner

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/aretw0/clic/pkg/history"
	"github.com/chzyer/readline"
)

// Completer is the autocomplete engine seen by the line editor.
type Completer interface {
	CompleteWithCursor(line string, cursor int) (string, int)
	Candidates(line string, cursor int) []string
}

// ReadlineHandler is an IOHandler backed by a terminal line editor.
// Tab completes the name under the cursor; a second tab on an ambiguous name
// lists the candidates. Up and down browse the history log.
type ReadlineHandler struct {
	rl        *readline.Instance
	completer Completer
	history   *history.Log

	mu       sync.Mutex
	browsing bool
}

// ReadlineOption configures the readline.Config before the editor starts.
type ReadlineOption func(*readline.Config)

// WithReadlinePrompt sets the prompt (default DefaultPrompt).
func WithReadlinePrompt(prompt string) ReadlineOption {
	return func(c *readline.Config) {
		c.Prompt = prompt
	}
}

// WithReadlineIO replaces the terminal streams, mostly for tests.
func WithReadlineIO(in io.ReadCloser, out io.Writer) ReadlineOption {
	return func(c *readline.Config) {
		c.Stdin = in
		c.Stdout = out
		c.Stderr = out
	}
}

// NewReadlineHandler starts a line editor. completer and log may be nil.
func NewReadlineHandler(completer Completer, log *history.Log, opts ...ReadlineOption) (*ReadlineHandler, error) {
	h := &ReadlineHandler{completer: completer, history: log}
	cfg := &readline.Config{
		Prompt: DefaultPrompt,
		// The history log is browsed through the listener below.
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		Listener:               h,
	}
	if completer != nil {
		cfg.AutoComplete = h
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	h.rl = rl
	return h, nil
}

// Input reads a line. Ctrl+C on the line returns ErrInterrupted, Ctrl+D io.EOF.
// When ctx is done the editor is closed, so the handler cannot be reused.
func (h *ReadlineHandler) Input(ctx context.Context) (string, error) {
	h.mu.Lock()
	h.browsing = false
	h.mu.Unlock()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			h.rl.Close()
		case <-done:
		}
	}()

	line, err := h.rl.Readline()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, readline.ErrInterrupt) {
			return "", ErrInterrupted
		}
		return "", err
	}
	return line, nil
}

// Output returns a writer that keeps the prompt intact.
func (h *ReadlineHandler) Output() io.Writer {
	return h.rl.Stdout()
}

// Close restores the terminal.
func (h *ReadlineHandler) Close() error {
	return h.rl.Close()
}

// Do implements readline.AutoCompleter. readline only inserts text at the
// cursor, so a completion is returned as the runes added after the name typed so far.
func (h *ReadlineHandler) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line)
	revised, cursor := h.completer.CompleteWithCursor(text, pos)
	if revised != text {
		added := []rune(revised)[pos:cursor]
		return [][]rune{added}, 0
	}

	prefix := currentWord(line, pos)
	candidates := h.completer.Candidates(text, pos)
	if len(candidates) < 2 {
		return nil, 0
	}
	out := make([][]rune, 0, len(candidates))
	for _, c := range candidates {
		r := []rune(c)
		if len(r) < len(prefix) {
			continue
		}
		out = append(out, r[len(prefix):])
	}
	return out, len(prefix)
}

// currentWord returns the name under the cursor. Past the first chunk the
// option marker is left out.
func currentWord(line []rune, pos int) []rune {
	start := pos
	for start > 0 && line[start-1] != ' ' {
		start--
	}
	word := line[start:pos]
	if start > 0 {
		for len(word) > 0 && word[0] == '-' {
			word = word[1:]
		}
	}
	return word
}

// OnChange implements readline.Listener. The first up press shows the newest
// entry; later presses walk toward older ones.
func (h *ReadlineHandler) OnChange(line []rune, pos int, key rune) ([]rune, int, bool) {
	if h.history == nil {
		return nil, 0, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	var (
		value string
		ok    bool
	)
	switch key {
	case readline.CharPrev:
		if h.browsing {
			value, ok = h.history.Previous()
		} else {
			value, ok = h.history.Current()
			h.browsing = ok
		}
	case readline.CharNext:
		if !h.browsing {
			return nil, 0, false
		}
		value, ok = h.history.Next()
	default:
		return nil, 0, false
	}
	if !ok {
		return nil, 0, false
	}
	r := []rune(value)
	return r, len(r), true
}
