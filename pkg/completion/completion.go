// Package completion expands partially typed command and option names.
//
// The command name is the text before the first space, as the dispatcher
// reads it. Past it, the word under the cursor ends at spaces or tabs, like
// a token:
//
//   - the command name is matched against command ids and flow names;
//   - a word starting with "--" is matched against the long option names of
//     the command;
//   - a word starting with a single "-" is matched against its one-letter
//     shorthands, so a completed line always parses the way it reads.
//
// Completion never happens while the cursor is inside an open quote, since the
// words would not line up with the tokens the dispatcher sees.
package completion

import (
	"sort"
	"strings"

	"github.com/aretw0/clic/pkg/ports"
	"github.com/aretw0/clic/pkg/tokenizer"
)

const optionMarker = '-'

// ShorthandLister is implemented by commands whose options have one-letter
// shorthands. command.Base implements it.
type ShorthandLister interface {
	OptionShorthands() []string
}

// Engine completes lines against a catalog of commands and flows.
type Engine struct {
	catalog ports.Catalog
}

// New creates an engine reading names from catalog.
func New(catalog ports.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Complete returns line with the name under cursor expanded to the longest
// prefix shared by every matching candidate. cursor is an offset in runes.
// The line is returned unchanged when nothing can be expanded.
func (e *Engine) Complete(line string, cursor int) string {
	revised, _ := e.CompleteWithCursor(line, cursor)
	return revised
}

// CompleteWithCursor is Complete, also returning the cursor position after the
// expanded text. Text is only ever inserted at the cursor.
func (e *Engine) CompleteWithCursor(line string, cursor int) (string, int) {
	t, ok := e.locate(line, cursor)
	if !ok {
		return line, cursor
	}

	var insert string
	switch {
	case t.option && t.prefix == "":
		if len(t.candidates) != 1 {
			return line, cursor
		}
		insert = t.candidates[0]
	case t.prefix == "":
		return line, cursor
	default:
		insert = LongestCommonPrefix(t.prefix, t.candidates)
		if insert == "" {
			return line, cursor
		}
	}

	added := []rune(insert)[len([]rune(t.prefix)):]
	out := make([]rune, 0, len(t.runes)+len(added))
	out = append(out, t.runes[:cursor]...)
	out = append(out, added...)
	out = append(out, t.runes[cursor:]...)
	return string(out), cursor + len(added)
}

// Candidates returns the full names matching the text under cursor, sorted.
func (e *Engine) Candidates(line string, cursor int) []string {
	t, ok := e.locate(line, cursor)
	if !ok {
		return nil
	}
	return t.candidates
}

// target describes the name under the cursor.
type target struct {
	runes      []rune
	prefix     string // typed part of the name, ending at the cursor
	option     bool
	candidates []string // names starting with prefix
}

func (e *Engine) locate(line string, cursor int) (target, bool) {
	runes := []rune(line)
	if cursor < 0 || cursor > len(runes) {
		return target{}, false
	}
	if tokenizer.OpenQuote(string(runes[:cursor])) {
		return target{}, false
	}
	t := target{runes: runes}

	head := len(runes)
	for i, r := range runes {
		if r == ' ' {
			head = i
			break
		}
	}
	if cursor <= head {
		t.prefix = string(runes[:cursor])
		t.candidates = filter(t.prefix, e.commandNames())
		return t, true
	}

	start := cursor
	for start > head+1 && !tokenizer.IsSpace(runes[start-1]) {
		start--
	}
	marker := 0
	for start+marker < len(runes) && runes[start+marker] == optionMarker {
		marker++
	}
	if marker == 0 || cursor < start+marker {
		return target{}, false
	}
	cmd, ok := e.catalog.CreateCommand(string(runes[:head]))
	if !ok {
		return target{}, false
	}

	var names []string
	if marker == 1 {
		if sl, ok := cmd.(ShorthandLister); ok {
			names = sl.OptionShorthands()
		}
	} else {
		names = cmd.OptionNames()
	}
	t.option = true
	t.prefix = string(runes[start+marker : cursor])
	t.candidates = filter(t.prefix, names)
	return t, true
}

func (e *Engine) commandNames() []string {
	names := e.catalog.ListCommandIDs()
	for name := range e.catalog.ListFlows() {
		names = append(names, name)
	}
	return names
}

// filter returns the sorted, de-duplicated names starting with prefix.
func filter(prefix string, names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if strings.HasPrefix(n, prefix) && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// LongestCommonPrefix returns the longest prefix shared by every candidate
// starting with prefix, or "" when no candidate does.
func LongestCommonPrefix(prefix string, candidates []string) string {
	var lcp []rune
	found := false
	for _, c := range candidates {
		if !strings.HasPrefix(c, prefix) {
			continue
		}
		if !found {
			lcp, found = []rune(c), true
			continue
		}
		r := []rune(c)
		n := 0
		for n < len(lcp) && n < len(r) && lcp[n] == r[n] {
			n++
		}
		lcp = lcp[:n]
	}
	return string(lcp)
}
