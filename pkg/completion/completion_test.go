package completion_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/clic/pkg/adapters/memory"
	"github.com/aretw0/clic/pkg/command"
	"github.com/aretw0/clic/pkg/completion"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/registry"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// options declares string options; "name/s" also gives the option the shorthand s.
func options(names ...string) domain.Factory {
	return command.NewFunc(func(fs *pflag.FlagSet) {
		for _, n := range names {
			name, short, _ := strings.Cut(n, "/")
			fs.StringP(name, short, "", "")
		}
	}, nil)
}

func newEngine(t *testing.T, source *memory.Source) *completion.Engine {
	t.Helper()
	reg := registry.New(source)
	require.NoError(t, reg.Load(context.Background()))
	return completion.New(reg)
}

func TestComplete_CommandNames(t *testing.T) {
	e := newEngine(t, memory.NewSource(
		domain.CommandDescriptor{ID: "install", Factory: options("force")},
		domain.CommandDescriptor{ID: "info", Factory: options()},
	))

	tests := []struct {
		name   string
		line   string
		cursor int
		want   string
	}{
		{"shared prefix only", "in", 2, "in"},
		{"unique match", "ins", 3, "install"},
		{"empty prefix", "", 0, ""},
		{"no match", "zz", 2, "zz"},
		{"keeps text past cursor", "insXY", 3, "installXY"},
		{"keeps other chunks", "ins --force", 3, "install --force"},
		{"cursor out of range", "ins", 9, "ins"},
		{"negative cursor", "ins", -1, "ins"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Complete(tt.line, tt.cursor))
		})
	}
}

func TestComplete_SingleCommand(t *testing.T) {
	e := newEngine(t, memory.NewSource(domain.CommandDescriptor{ID: "install", Factory: options()}))
	assert.Equal(t, "install", e.Complete("i", 1))
}

func TestComplete_FlowNames(t *testing.T) {
	e := newEngine(t, memory.NewSource(
		domain.CommandDescriptor{ID: "build", Factory: options()},
	).AddFlow("deploy", "build"))

	assert.Equal(t, "deploy", e.Complete("dep", 3))
	assert.Equal(t, []string{"build", "deploy"}, e.Candidates("", 0))
}

func TestComplete_Options(t *testing.T) {
	e := newEngine(t, memory.NewSource(
		domain.CommandDescriptor{ID: "install", Factory: options("force", "from", "verbose/v")},
		domain.CommandDescriptor{ID: "solo", Factory: options("name")},
	))

	tests := []struct {
		name   string
		line   string
		cursor int
		want   string
	}{
		{"long marker unique", "install --v", 11, "install --verbose"},
		{"short marker takes no long name", "install -ve", 11, "install -ve"},
		{"short marker single shorthand", "install -", 9, "install -v"},
		{"short marker without shorthands", "solo -", 6, "solo -"},
		{"shared option prefix", "install --f", 11, "install --f"},
		{"shared then unique", "install --fo", 12, "install --force"},
		{"empty prefix many options", "install --", 10, "install --"},
		{"empty prefix single option", "solo --", 7, "solo --name"},
		{"not an option chunk", "install fo", 10, "install fo"},
		{"cursor inside marker", "install --v", 9, "install --v"},
		{"unknown command", "nope --v", 8, "nope --v"},
		{"middle chunk", "install --v x", 11, "install --verbose x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Complete(tt.line, tt.cursor))
		})
	}
}

func TestComplete_RoundTripsSpacing(t *testing.T) {
	e := newEngine(t, memory.NewSource(domain.CommandDescriptor{ID: "install", Factory: options("force")}))
	assert.Equal(t, "ins  a   b", e.Complete("ins  a   b", 6))
	assert.Equal(t, "install  a", e.Complete("ins  a", 3))
}

func TestComplete_TabSeparatedWords(t *testing.T) {
	e := newEngine(t, memory.NewSource(domain.CommandDescriptor{ID: "install", Factory: options("force")}))
	assert.Equal(t, "install a\t--force", e.Complete("install a\t--fo", 14))
	assert.Equal(t, "install\t--fo", e.Complete("install\t--fo", 12), "the command name ends at the first space")
}

func TestComplete_InsideOpenQuote(t *testing.T) {
	e := newEngine(t, memory.NewSource(domain.CommandDescriptor{ID: "install", Factory: options("force")}))
	line := `install "a --f`
	assert.Equal(t, line, e.Complete(line, len(line)))

	closed := `install "a b" --f`
	assert.Equal(t, `install "a b" --force`, e.Complete(closed, len(closed)))
}

func TestCompleteWithCursor(t *testing.T) {
	e := newEngine(t, memory.NewSource(domain.CommandDescriptor{ID: "install", Factory: options("force")}))
	line, cursor := e.CompleteWithCursor("ins --force", 3)
	assert.Equal(t, "install --force", line)
	assert.Equal(t, 7, cursor)
}

func TestCandidates_Options(t *testing.T) {
	e := newEngine(t, memory.NewSource(domain.CommandDescriptor{ID: "install", Factory: options("force", "from", "verbose")}))
	assert.Equal(t, []string{"force", "from"}, e.Candidates("install --f", 11))
}

func TestLongestCommonPrefix(t *testing.T) {
	assert.Equal(t, "in", completion.LongestCommonPrefix("i", []string{"install", "info", "zeta"}))
	assert.Equal(t, "install", completion.LongestCommonPrefix("ins", []string{"install", "info"}))
	assert.Equal(t, "", completion.LongestCommonPrefix("x", []string{"install"}))
	assert.Equal(t, "", completion.LongestCommonPrefix("", nil))
	assert.Equal(t, "héllo", completion.LongestCommonPrefix("h", []string{"héllo", "héllo-world"}))
}
