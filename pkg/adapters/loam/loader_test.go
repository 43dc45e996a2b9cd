package loam

import (
	"context"
	"testing"

	"github.com/aretw0/clic/internal/testutils"
	"github.com/aretw0/clic/pkg/command"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports/tests"
	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBuilder struct {
	kinds map[string]string
}

func (b *recordingBuilder) Build(id, kind string, config map[string]any) (domain.Factory, error) {
	if b.kinds == nil {
		b.kinds = make(map[string]string)
	}
	b.kinds[id] = kind
	return command.NewFunc(nil, nil), nil
}

func seed(t *testing.T, files map[string]string) *loam.TypedRepository[CommandMetadata] {
	t.Helper()
	tmpDir, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))
	testutils.WriteFiles(t, tmpDir, files)
	return loam.NewTypedRepository[CommandMetadata](repo)
}

var catalogFiles = map[string]string{
	"greet.md": `---
kind: hello
description: Greets someone
config:
  greeting: Hi
---
Greets the person given with --name.`,
	"list.md": `---
description: Lists commands
---
`,
	"welcome.md": `---
steps: [greet, list]
---
Runs greet, then list.`,
}

func TestLoader_Contract(t *testing.T) {
	loader := New(seed(t, catalogFiles), &recordingBuilder{})

	tests.RegistrySourceContractTest(t, loader,
		[]string{"greet", "list"},
		map[string][]string{"welcome": {"greet", "list"}},
	)
}

func TestLoader_DocumentsBecomeCommands(t *testing.T) {
	b := &recordingBuilder{}
	loader := New(seed(t, catalogFiles), b)

	catalog, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog.Commands, 2)

	greet := catalog.Commands[0]
	assert.Equal(t, "greet", greet.ID)
	assert.Equal(t, "Greets someone", greet.Description)
	assert.Equal(t, "Greets the person given with --name.", greet.Details)

	assert.Equal(t, "hello", b.kinds["greet"])
	assert.Equal(t, "list", b.kinds["list"], "kind defaults to the id")
}

func TestLoader_Collision(t *testing.T) {
	loader := New(seed(t, map[string]string{
		"a.md": "---\nid: same\n---\n",
		"b.md": "---\nid: same\n---\n",
	}), &recordingBuilder{})

	_, err := loader.Load(context.Background())
	assert.ErrorContains(t, err, "collision detected")
}
