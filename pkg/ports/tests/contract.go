package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/regula/pkg/ports"
)

// CatalogContractTest is a reusable test suite that verifies if an adapter complies with ports.Catalog.
// want holds the entries the catalog was seeded with, keyed by id.
func CatalogContractTest(t *testing.T, catalog ports.Catalog, want map[string]ports.Entry) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Get (Success)
	t.Run("Get_Success", func(t *testing.T) {
		for id, expected := range want {
			entry, err := catalog.Get(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting entry %s: %v", id, err)
			}
			if entry.Kind != expected.Kind {
				t.Errorf("kind mismatch for %s. got %q, want %q", id, entry.Kind, expected.Kind)
			}
			if entry.Regex != expected.Regex {
				t.Errorf("regex mismatch for %s. got %q, want %q", id, entry.Regex, expected.Regex)
			}
			if (entry.Automaton == nil) != (expected.Automaton == nil) {
				t.Errorf("automaton presence mismatch for %s", id)
			}
		}
	})

	// 2. Test Get (NotFound)
	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := catalog.Get(ctx, "non-existent-entry")
		if !errors.Is(err, ports.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		entries, err := catalog.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing entries: %v", err)
		}
		if len(entries) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(entries))
		}
		for i := 1; i < len(entries); i++ {
			if entries[i-1].ID > entries[i].ID {
				t.Errorf("entries not ordered by id: %s before %s", entries[i-1].ID, entries[i].ID)
			}
		}
	})
}
