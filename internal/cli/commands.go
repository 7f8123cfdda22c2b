package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/regula"
	"github.com/aretw0/regula/internal/presentation/graph"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/ports"
)

// ErrFailed signals that a command printed a negative outcome (failed
// conversion, invalid automaton, rejected input) and should exit non-zero.
var ErrFailed = errors.New("command failed")

// ConvertOptions describes one `regula convert` invocation.
type ConvertOptions struct {
	Kind domain.ConversionKind
	// Source is the regex for regex_to_dfa and an automaton file otherwise.
	Source string
	// Entry, when set, reads the input from the engine catalog instead.
	Entry  string
	Format string
	Steps  bool
}

// Convert runs a conversion and prints its result.
func Convert(ctx context.Context, eng *regula.Engine, w io.Writer, opts ConvertOptions) error {
	req := domain.ConversionRequest{Kind: opts.Kind}

	switch {
	case opts.Entry != "":
		entry, err := lookupEntry(ctx, eng, opts.Entry)
		if err != nil {
			return err
		}
		if opts.Kind == domain.ConversionRegexToDFA {
			if entry.Kind != ports.EntryRegex {
				return fmt.Errorf("catalog entry %s is a %s, not a regex", entry.ID, entry.Kind)
			}
			req.Regex = entry.Regex
		} else {
			if entry.Automaton == nil {
				return fmt.Errorf("catalog entry %s is a %s, not an automaton", entry.ID, entry.Kind)
			}
			req.Automaton = *entry.Automaton
		}
	case opts.Kind == domain.ConversionRegexToDFA:
		req.Regex = opts.Source
	default:
		spec, err := LoadAutomaton(opts.Source)
		if err != nil {
			return err
		}
		req.Automaton = spec
	}

	result, err := eng.Convert(ctx, req)
	if err != nil {
		return err
	}
	if err := PrintResult(w, opts.Format, result, opts.Steps); err != nil {
		return err
	}
	if !result.Success {
		return ErrFailed
	}
	return nil
}

func lookupEntry(ctx context.Context, eng *regula.Engine, id string) (ports.Entry, error) {
	catalog := eng.Catalog()
	if catalog == nil {
		return ports.Entry{}, fmt.Errorf("no catalog configured (use --catalog or the catalog config key)")
	}
	return catalog.Get(ctx, id)
}

// Validate prints the structural problems of an automaton.
func Validate(eng *regula.Engine, w io.Writer, spec domain.Spec, deterministic bool) error {
	kind := "NFA"
	if deterministic {
		kind = "DFA"
	}
	problems := eng.Validate(spec, deterministic)
	if len(problems) == 0 {
		fmt.Fprintf(w, "✓ valid %s\n", kind)
		return nil
	}
	fmt.Fprintf(w, "✗ invalid %s\n", kind)
	for _, p := range problems {
		fmt.Fprintf(w, "  - %s\n", p)
	}
	return ErrFailed
}

// Accepts prints whether the automaton accepts input, one symbol per character.
func Accepts(ctx context.Context, eng *regula.Engine, w io.Writer, spec domain.Spec, deterministic bool, input string) error {
	ok, err := eng.Accepts(ctx, spec, deterministic, domain.Symbols(input))
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(w, "accepted: %q\n", input)
		return nil
	}
	fmt.Fprintf(w, "rejected: %q\n", input)
	return ErrFailed
}

// Graph prints a Mermaid diagram. With a trace input on a DFA, the states
// visited while reading it are highlighted.
func Graph(w io.Writer, spec domain.Spec, deterministic bool, trace *string) error {
	if !deterministic {
		if trace != nil {
			return fmt.Errorf("--trace needs a DFA (use --dfa)")
		}
		_, err := io.WriteString(w, graph.GenerateMermaid(spec.NFA(), nil))
		return err
	}

	dfa := spec.DFA()
	var overlay *graph.GraphOverlay
	if trace != nil {
		visited, current := Run(dfa, domain.Symbols(*trace))
		overlay = &graph.GraphOverlay{VisitedStates: visited, CurrentState: current}
	}
	_, err := io.WriteString(w, graph.GenerateMermaid(dfa, overlay))
	return err
}

// Run feeds input to dfa and returns the states visited, start included, and
// the state reached. The run stops early where the DFA has no transition;
// current is then empty.
func Run(dfa *domain.DFA, input []string) (visited []string, current string) {
	current = dfa.StartState()
	if current == "" {
		return nil, ""
	}
	visited = append(visited, current)
	for _, sym := range input {
		next, ok := dfa.Next(current, sym)
		if !ok {
			return visited, ""
		}
		current = next
		visited = append(visited, current)
	}
	return visited, current
}

// ListCatalog prints the catalog as a table.
func ListCatalog(ctx context.Context, catalog ports.Catalog, w io.Writer) error {
	entries, err := catalog.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tTITLE\tTAGS")
	for _, e := range entries {
		title := e.Title
		if title == "" && e.Kind == ports.EntryRegex {
			title = e.Regex
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Kind, title, strings.Join(e.Tags, ","))
	}
	return tw.Flush()
}
