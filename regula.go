package regula

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/regula/internal/convert"
	"github.com/aretw0/regula/internal/simplify"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/ports"
)

// Engine is the high-level entry point for the Regula library.
// It wraps the conversion algorithms with logging, lifecycle hooks and
// configuration shared by every call. An Engine is safe for concurrent use.
type Engine struct {
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	maxPasses int
	order     func([]string) []string
	catalog   ports.Catalog
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxPasses caps the simplifier passes. Zero runs to a fixpoint.
func WithMaxPasses(n int) Option {
	return func(e *Engine) {
		e.maxPasses = n
	}
}

// WithEliminationOrder sets the state elimination order used by the
// automaton to regex conversions.
func WithEliminationOrder(order func(interior []string) []string) Option {
	return func(e *Engine) {
		e.order = order
	}
}

// ReverseElimination is an elimination order that removes the most
// recently added states first.
func ReverseElimination(interior []string) []string {
	return convert.Reverse(interior)
}

// WithCatalog attaches a catalog of named automata and regexes.
func WithCatalog(c ports.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// New initializes a new Regula Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return eng
}

// Catalog returns the attached catalog, or nil.
func (e *Engine) Catalog() ports.Catalog {
	return e.catalog
}

// RegexToDFA converts a regex to a DFA by direct construction.
func (e *Engine) RegexToDFA(ctx context.Context, regex string) domain.Result[*domain.DFA] {
	return observe(ctx, e, domain.ConversionRegexToDFA, func(opts []convert.Option) domain.Result[*domain.DFA] {
		return convert.RegexToDFA(regex, opts...)
	})
}

// NFAToDFA converts an NFA to a DFA by subset construction.
func (e *Engine) NFAToDFA(ctx context.Context, nfa *domain.NFA) domain.Result[*domain.DFA] {
	return observe(ctx, e, domain.ConversionNFAToDFA, func(opts []convert.Option) domain.Result[*domain.DFA] {
		return convert.NFAToDFA(nfa, opts...)
	})
}

// DFAToRegex converts a DFA to a regex by state elimination.
func (e *Engine) DFAToRegex(ctx context.Context, dfa *domain.DFA) domain.Result[string] {
	return observe(ctx, e, domain.ConversionDFAToRegex, func(opts []convert.Option) domain.Result[string] {
		return convert.DFAToRegex(dfa, opts...)
	})
}

// NFAToRegex converts an NFA to a regex by state elimination.
func (e *Engine) NFAToRegex(ctx context.Context, nfa *domain.NFA) domain.Result[string] {
	return observe(ctx, e, domain.ConversionNFAToRegex, func(opts []convert.Option) domain.Result[string] {
		return convert.NFAToRegex(nfa, opts...)
	})
}

// Convert dispatches a wire-form request to the matching conversion.
func (e *Engine) Convert(ctx context.Context, req domain.ConversionRequest) (domain.Result[any], error) {
	switch req.Kind {
	case domain.ConversionRegexToDFA:
		return erase(e.RegexToDFA(ctx, req.Regex)), nil
	case domain.ConversionNFAToDFA:
		return erase(e.NFAToDFA(ctx, req.Automaton.NFA())), nil
	case domain.ConversionDFAToRegex:
		return erase(e.DFAToRegex(ctx, req.Automaton.DFA())), nil
	case domain.ConversionNFAToRegex:
		return erase(e.NFAToRegex(ctx, req.Automaton.NFA())), nil
	}
	return domain.Result[any]{}, fmt.Errorf("unknown conversion %q", req.Kind)
}

// Accepts reports whether the automaton accepts input, read as a DFA when
// deterministic is set and as an NFA otherwise. Invalid automata yield a
// validation error.
func (e *Engine) Accepts(ctx context.Context, spec domain.Spec, deterministic bool, input []string) (bool, error) {
	if deterministic {
		dfa := spec.DFA()
		if problems := dfa.Validate(); len(problems) > 0 {
			return false, domain.NewValidationError("Invalid DFA", problems...)
		}
		return dfa.Accepts(input), nil
	}
	nfa := spec.NFA()
	if problems := nfa.Validate(); len(problems) > 0 {
		return false, domain.NewValidationError("Invalid NFA", problems...)
	}
	return nfa.Accepts(input), nil
}

// Validate returns the structural problems of spec read as a DFA or an NFA.
func (e *Engine) Validate(spec domain.Spec, deterministic bool) []string {
	if deterministic {
		return spec.DFA().Validate()
	}
	return spec.NFA().Validate()
}

func erase[T any](r domain.Result[T]) domain.Result[any] {
	out := domain.Result[any]{Success: r.Success, Steps: r.Steps, Error: r.Error}
	if r.Success {
		out.Value = r.Value
	}
	return out
}

// observe runs a conversion with the engine's options, logging and hooks.
func observe[T any](ctx context.Context, e *Engine, kind domain.ConversionKind, run func([]convert.Option) domain.Result[T]) domain.Result[T] {
	start := time.Now()
	if e.hooks.OnConversionStart != nil {
		e.hooks.OnConversionStart(ctx, &domain.ConversionEvent{Timestamp: start, Kind: kind})
	}
	e.logger.DebugContext(ctx, "conversion started", "kind", kind)

	opts := []convert.Option{
		convert.WithSimplifier(simplify.New(simplify.WithMaxPasses(e.maxPasses))),
	}
	if e.order != nil {
		opts = append(opts, convert.WithEliminationOrder(e.order))
	}
	if e.hooks.OnStep != nil {
		opts = append(opts, convert.WithStepObserver(func(step domain.Step) {
			e.hooks.OnStep(ctx, &domain.StepEvent{Timestamp: time.Now(), Kind: kind, Step: step})
		}))
	}

	result := run(opts)

	end := &domain.ConversionEvent{
		Timestamp: time.Now(),
		Kind:      kind,
		Success:   result.Success,
		Steps:     len(result.Steps),
		Duration:  time.Since(start),
	}
	if result.Error != nil {
		end.ErrorKind = result.Error.Kind
		e.logger.WarnContext(ctx, "conversion failed", "kind", kind, "error", result.Error)
	}
	e.logger.DebugContext(ctx, "conversion finished", "kind", kind, "success", result.Success, "steps", len(result.Steps))
	if e.hooks.OnConversionEnd != nil {
		e.hooks.OnConversionEnd(ctx, end)
	}
	return result
}
