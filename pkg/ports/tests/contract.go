package tests

import (
	"context"
	"sort"
	"testing"

	"github.com/aretw0/clic/pkg/ports"
)

// RegistrySourceContractTest is a reusable test suite that verifies if an adapter complies with ports.RegistrySource.
// wantCommands lists the expected command ids, wantFlows the expected flow steps by name.
func RegistrySourceContractTest(t *testing.T, source ports.RegistrySource, wantCommands []string, wantFlows map[string][]string) {
	t.Helper()
	ctx := context.Background()

	// 1. Commands
	t.Run("Load_Commands", func(t *testing.T) {
		catalog, err := source.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading catalog: %v", err)
		}

		var ids []string
		for _, c := range catalog.Commands {
			ids = append(ids, c.ID)
			if c.Factory == nil {
				t.Errorf("command %s has no factory", c.ID)
				continue
			}
			if c.Factory() == nil {
				t.Errorf("factory of %s returned nil", c.ID)
			}
		}
		sort.Strings(ids)
		want := append([]string(nil), wantCommands...)
		sort.Strings(want)
		if len(ids) != len(want) {
			t.Fatalf("expected commands %v, got %v", want, ids)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Errorf("expected commands %v, got %v", want, ids)
				break
			}
		}
	})

	// 2. Flows
	t.Run("Load_Flows", func(t *testing.T) {
		catalog, err := source.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading catalog: %v", err)
		}
		if len(catalog.Flows) != len(wantFlows) {
			t.Fatalf("expected %d flows, got %d", len(wantFlows), len(catalog.Flows))
		}
		for _, f := range catalog.Flows {
			steps, ok := wantFlows[f.Name]
			if !ok {
				t.Errorf("unexpected flow %s", f.Name)
				continue
			}
			if len(steps) != len(f.Steps) {
				t.Errorf("flow %s: expected steps %v, got %v", f.Name, steps, f.Steps)
				continue
			}
			for i := range steps {
				if steps[i] != f.Steps[i] {
					t.Errorf("flow %s: expected steps %v, got %v", f.Name, steps, f.Steps)
					break
				}
			}
		}
	})

	// 3. Idempotence
	t.Run("Load_Repeatable", func(t *testing.T) {
		first, err := source.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := source.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Commands) != len(second.Commands) || len(first.Flows) != len(second.Flows) {
			t.Errorf("repeated loads differ: %d/%d commands, %d/%d flows",
				len(first.Commands), len(second.Commands), len(first.Flows), len(second.Flows))
		}
	})
}
