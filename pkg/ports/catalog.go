package ports

import (
	"context"
	"errors"

	"github.com/aretw0/regula/pkg/domain"
)

// ErrEntryNotFound is returned when a catalog has no entry with the requested id.
var ErrEntryNotFound = errors.New("catalog entry not found")

// EntryKind tells what a catalog entry holds.
type EntryKind string

const (
	EntryRegex EntryKind = "regex"
	EntryNFA   EntryKind = "nfa"
	EntryDFA   EntryKind = "dfa"
)

// Entry is a named regex or automaton.
type Entry struct {
	ID          string       `json:"id"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Kind        EntryKind    `json:"kind"`
	Regex       string       `json:"regex,omitempty"`
	Automaton   *domain.Spec `json:"automaton,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
}

// Catalog is a read-only collection of entries.
// This allows the storage layer (Loam, Memory) to be decoupled.
type Catalog interface {
	// Get retrieves an entry by id.
	// Returns ErrEntryNotFound if the entry does not exist.
	Get(ctx context.Context, id string) (Entry, error)

	// List returns every entry, ordered by id.
	List(ctx context.Context) ([]Entry, error)
}
