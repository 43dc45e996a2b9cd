package runner_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/clic"
	"github.com/aretw0/clic/pkg/command"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/history"
	"github.com/aretw0/clic/pkg/runner"
	"github.com/aretw0/clic/pkg/sink"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...clic.Option) *clic.Engine {
	t.Helper()
	eng, err := clic.New(context.Background(), opts...)
	require.NoError(t, err)
	return eng
}

func withoutSeparators(lines []string) []string {
	var out []string
	for _, l := range lines {
		if l != domain.Separator {
			out = append(out, l)
		}
	}
	return out
}

func TestRunner_Transcript(t *testing.T) {
	eng := newEngine(t)
	out := sink.NewBuffer(0)
	input := "hello\n\n   \necho a 'b c'\nexit\nhello --name never\n"

	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithHistory(eng.History()),
		runner.WithSink(out),
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(input), io.Discard)),
	)
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []string{
		"> hello",
		"Hello world",
		"> echo a 'b c'",
		"a b c",
	}, withoutSeparators(out.Lines()))
	assert.Equal(t, []string{"echo a 'b c'", "hello"}, eng.History().Entries())
}

func TestRunner_NoEcho(t *testing.T) {
	eng := newEngine(t)
	out := sink.NewBuffer(0)

	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithSink(out),
		runner.WithEcho(false),
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("hello -n Ada"), io.Discard)),
	)
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{"Hello Ada"}, withoutSeparators(out.Lines()))
}

func TestRunner_RejectsOversizedLine(t *testing.T) {
	t.Setenv(runner.EnvMaxInputSize, "8")
	eng := newEngine(t)
	out := sink.NewBuffer(0)
	log := history.New(5)

	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithSink(out),
		runner.WithHistory(log),
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("echo way too long\nhello\n"), io.Discard)),
	)
	require.NoError(t, r.Run(context.Background()))

	lines := withoutSeparators(out.Lines())
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "error: input exceeds maximum allowed size"))
	assert.Equal(t, []string{"> hello", "Hello world"}, lines[1:])
	assert.Equal(t, []string{"hello"}, log.Entries())
}

func TestRunner_SanitizesControlChars(t *testing.T) {
	eng := newEngine(t)
	out := sink.NewBuffer(0)

	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithSink(out),
		runner.WithEcho(false),
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("hel\x07lo\n"), io.Discard)),
	)
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{"Hello world"}, withoutSeparators(out.Lines()))
}

func TestRunner_SharedContext(t *testing.T) {
	eng := newEngine(t)
	out := sink.NewBuffer(0)
	ec := domain.NewExecutionContext(out)

	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithExecutionContext(ec),
		runner.WithEcho(false),
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("echo x y\n"), io.Discard)),
	)
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{"x", "y"}, ec.Outputs())
}

func TestRunner_Accept(t *testing.T) {
	eng := newEngine(t)
	r := runner.NewRunner(runner.WithEngine(eng), runner.WithEcho(false))
	ec := domain.NewExecutionContext(nil)

	report, err := r.Accept(context.Background(), "   ", ec)
	require.NoError(t, err)
	assert.Nil(t, report, "blank lines are skipped")

	report, err = r.Accept(context.Background(), "  hello  ", ec)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, "hello", report.Line)
	assert.True(t, report.Completed())
}

func TestRunner_NoEngine(t *testing.T) {
	err := runner.NewRunner().Run(context.Background())
	assert.ErrorIs(t, err, runner.ErrNoEngine)
}

func TestRunner_StopsWhenContextDone(t *testing.T) {
	eng := newEngine(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithSink(sink.NewBuffer(0)),
		runner.WithInputHandler(runner.NewTextHandler(pr, io.Discard)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}

type failingHandler struct{}

func (failingHandler) Input(ctx context.Context) (string, error) {
	return "", errors.New("device gone")
}

func (failingHandler) Output() io.Writer { return io.Discard }

func TestRunner_InputError(t *testing.T) {
	eng := newEngine(t)
	r := runner.NewRunner(runner.WithEngine(eng), runner.WithInputHandler(failingHandler{}))

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device gone")
}

func TestRunner_CommandError(t *testing.T) {
	boom := command.NewFunc(nil, func(ctx context.Context, ec *domain.ExecutionContext, fs *pflag.FlagSet) error {
		return errors.New("boom")
	})
	eng := newEngine(t, clic.WithCommand(domain.CommandDescriptor{ID: "boom", Factory: boom}))
	out := sink.NewBuffer(0)

	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithSink(out),
		runner.WithEcho(false),
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("boom\nhello\n"), io.Discard)),
	)
	require.NoError(t, r.Run(context.Background()), "command failures do not end the session")
	assert.Equal(t, []string{"Hello world"}, withoutSeparators(out.Lines()))
}
