package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/clic/pkg/adapters/redis"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/runner"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifest = `
commands:
  - id: hi
    kind: hello
    description: Says hi
    config:
      greeting: Hi
flows:
  - name: twice
    steps: [hi, echo]
`

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))
	return path
}

func outputLines(s string) []string {
	var out []string
	for _, l := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if l != domain.Separator {
			out = append(out, l)
		}
	}
	return out
}

func TestRunLines(t *testing.T) {
	var out bytes.Buffer
	err := RunLines(context.Background(), RunOptions{Manifest: writeManifest(t)}, []string{"hi -n Ada", "twice"}, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi Ada", "Hi world", "Hi world"}, outputLines(out.String()))
}

func TestRunLines_Failure(t *testing.T) {
	var out bytes.Buffer
	err := RunLines(context.Background(), RunOptions{}, []string{"helo"}, &out)
	assert.ErrorIs(t, err, ErrDispatchFailed)
	assert.Contains(t, out.String(), `command not found: helo`)
}

func TestRunLines_BadManifest(t *testing.T) {
	err := RunLines(context.Background(), RunOptions{Manifest: filepath.Join(t.TempDir(), "missing.yaml")}, nil, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunScript(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("hi\n\nexit\nhi\n")
	require.NoError(t, RunScript(context.Background(), RunOptions{Manifest: writeManifest(t)}, in, &out))
	assert.Equal(t, []string{"> hi", "Hi world"}, outputLines(out.String()))
}

func TestRunComplete(t *testing.T) {
	opts := RunOptions{Manifest: writeManifest(t)}

	var out bytes.Buffer
	require.NoError(t, RunComplete(context.Background(), opts, "tw", -1, &out))
	assert.Equal(t, "twice\n", out.String())

	out.Reset()
	require.NoError(t, RunComplete(context.Background(), opts, "hel", -1, &out))
	assert.Equal(t, "hel\nhello\nhelp\n", out.String())
}

func TestCreateEngine_Metrics(t *testing.T) {
	env, err := createEngine(context.Background(), RunOptions{MetricsAddr: "127.0.0.1:0"}, createLogger(false))
	require.NoError(t, err)
	defer env.Close()
	require.NotNil(t, env.metrics)

	_, err = env.engine.Process(context.Background(), "hello", env.engine.NewContext(nil))
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(env.metrics, "clic_dispatches_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec := httptest.NewRecorder()
	newMetricsHandler(env.metrics).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clic_dispatches_total")

	rec = httptest.NewRecorder()
	newMetricsHandler(env.metrics).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCreateEngine_RedisJournal(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	env, err := createEngine(ctx, RunOptions{RedisAddr: mr.Addr(), RedisKey: "test:journal"}, createLogger(false))
	require.NoError(t, err)

	_, err = env.engine.Process(ctx, "hello", env.engine.NewContext(nil))
	require.NoError(t, err)
	_, err = env.engine.Process(ctx, "login --token abc", env.engine.NewContext(nil))
	require.NoError(t, err)
	require.NoError(t, env.Close())

	journal := redis.New(mr.Addr(), "", 0, redis.WithKey("test:journal"))
	defer journal.Close()
	recent, err := journal.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "login --token ***", recent[0].Line, "sensitive values are redacted")
	assert.Equal(t, "hello", recent[1].Line)
}

func TestRunLines_Journal(t *testing.T) {
	var out bytes.Buffer
	lines := []string{"hello", "echo -- --password hunter2", "journal"}
	require.NoError(t, RunLines(context.Background(), RunOptions{}, lines, &out))

	got := outputLines(out.String())
	require.Len(t, got, 4)
	assert.Equal(t, "--password hunter2", got[1])
	assert.True(t, strings.HasSuffix(got[2], "  hello"), got[2])
	assert.True(t, strings.HasSuffix(got[3], "  echo -- --password ***"), got[3], "the journal is redacted")
}

func TestRunSession_Watch(t *testing.T) {
	path := writeManifest(t)
	opts := RunOptions{Manifest: path, Watch: true}
	env, err := createEngine(context.Background(), opts, createLogger(false))
	require.NoError(t, err)
	defer env.Close()

	var out bytes.Buffer
	handler := runner.NewTextHandler(strings.NewReader("twice\n"), &out, runner.WithPrompt(""))
	require.NoError(t, runSession(context.Background(), opts, env, handler, createLogger(false), false))
	assert.Equal(t, []string{">>> Watching for catalog changes.", "Hi world", "Hi world"}, outputLines(out.String()))
}
