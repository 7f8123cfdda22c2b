// Package loam exposes a directory of Markdown, JSON or YAML documents as a
// ports.Catalog, using the Loam document store.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/ports"
)

// Catalog adapts a Loam repository to ports.Catalog.
type Catalog struct {
	Repo *loam.TypedRepository[EntryMetadata]
}

// New creates a catalog over an existing typed repository.
func New(repo *loam.TypedRepository[EntryMetadata]) *Catalog {
	return &Catalog{Repo: repo}
}

// Open initializes a read-only Loam repository at path.
func Open(path string) (*Catalog, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number across JSON and YAML documents.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[EntryMetadata](repo)), nil
}

// Get retrieves an entry by its normalized id.
func (c *Catalog) Get(ctx context.Context, id string) (ports.Entry, error) {
	entries, err := c.index(ctx)
	if err != nil {
		return ports.Entry{}, err
	}
	e, ok := entries[trimExtension(id)]
	if !ok {
		return ports.Entry{}, fmt.Errorf("%w: %s", ports.ErrEntryNotFound, id)
	}
	return e, nil
}

// List returns every entry ordered by id.
func (c *Catalog) List(ctx context.Context) ([]ports.Entry, error) {
	entries, err := c.index(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ports.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b ports.Entry) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (c *Catalog) index(ctx context.Context) (map[string]ports.Entry, error) {
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	entries := make(map[string]ports.Entry, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		entry, err := toEntry(id, doc.Data, doc.Content)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %s: %w", id, err)
		}
		entries[id] = entry
	}
	return entries, nil
}

func toEntry(id string, meta EntryMetadata, content string) (ports.Entry, error) {
	e := ports.Entry{
		ID:          id,
		Title:       meta.Title,
		Description: meta.Description,
		Kind:        ports.EntryKind(meta.Kind),
		Regex:       meta.Regex,
		Tags:        meta.Tags,
	}
	if e.Description == "" {
		e.Description = strings.TrimSpace(content)
	}

	switch e.Kind {
	case ports.EntryRegex:
		if e.Regex == "" {
			return e, fmt.Errorf("regex entry has no regex")
		}
	case ports.EntryNFA, ports.EntryDFA:
		if meta.Automaton == nil {
			return e, fmt.Errorf("%s entry has no automaton", e.Kind)
		}
		spec, err := domain.DecodeSpec(meta.Automaton)
		if err != nil {
			return e, err
		}
		e.Automaton = &spec
	case "":
		if e.Regex == "" {
			return e, fmt.Errorf("entry has no kind")
		}
		e.Kind = ports.EntryRegex
	default:
		return e, fmt.Errorf("unknown entry kind %q", e.Kind)
	}
	return e, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
