package convert

import (
	"slices"

	"github.com/aretw0/regula/internal/simplify"
	"github.com/aretw0/regula/pkg/domain"
)

// Options configures a conversion.
type Options struct {
	simplifier *simplify.Simplifier
	order      func(interior []string) []string
	observe    func(domain.Step)
}

// Option configures a conversion.
type Option func(*Options)

// WithSimplifier replaces the default simplifier used by the regex conversions.
func WithSimplifier(s *simplify.Simplifier) Option {
	return func(o *Options) {
		o.simplifier = s
	}
}

// WithEliminationOrder chooses the order interior states are eliminated in.
// The function receives them in insertion order. States it omits are
// eliminated afterwards in insertion order; unknown ids are ignored.
func WithEliminationOrder(order func(interior []string) []string) Option {
	return func(o *Options) {
		o.order = order
	}
}

// WithStepObserver is called with each step as soon as it is recorded.
func WithStepObserver(fn func(domain.Step)) Option {
	return func(o *Options) {
		o.observe = fn
	}
}

// Reverse is an elimination order that removes states last-in first-out.
func Reverse(interior []string) []string {
	out := slices.Clone(interior)
	slices.Reverse(out)
	return out
}

func newOptions(opts []Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.simplifier == nil {
		o.simplifier = simplify.New()
	}
	return o
}

// eliminationOrder resolves the configured order against the actual interior.
func (o *Options) eliminationOrder(interior []string) []string {
	if o.order == nil {
		return interior
	}
	pending := domain.NewStateSet(interior...)
	out := make([]string, 0, len(interior))
	for _, id := range o.order(slices.Clone(interior)) {
		if pending.Has(id) {
			delete(pending, id)
			out = append(out, id)
		}
	}
	for _, id := range interior {
		if pending.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
