package ports

import (
	"context"

	"github.com/aretw0/regula/pkg/domain"
)

// Converter is the engine surface used by transport adapters (HTTP, MCP).
// It is satisfied by *regula.Engine.
type Converter interface {
	// Convert runs a wire-form conversion request.
	Convert(ctx context.Context, req domain.ConversionRequest) (domain.Result[any], error)

	// Accepts checks membership of input in an automaton.
	Accepts(ctx context.Context, spec domain.Spec, deterministic bool, input []string) (bool, error)

	// Validate returns the structural problems of an automaton.
	Validate(spec domain.Spec, deterministic bool) []string
}
