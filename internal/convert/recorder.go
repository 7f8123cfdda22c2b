package convert

import (
	"fmt"

	"github.com/aretw0/regula/pkg/domain"
)

// recorder is the append-only step log owned by a single conversion call.
type recorder struct {
	steps   []domain.Step
	observe func(domain.Step)
}

func newRecorder(o *Options) *recorder {
	return &recorder{observe: o.observe}
}

func (r *recorder) add(kind domain.StepKind, title, description string, payload any) {
	seq := len(r.steps) + 1
	step := domain.Step{
		ID:          domain.StepID(seq),
		Sequence:    seq,
		Kind:        kind,
		Title:       title,
		Description: description,
		Payload:     payload,
	}
	r.steps = append(r.steps, step)
	if r.observe != nil {
		r.observe(step)
	}
}

// run executes body and wraps its outcome in a Result. Errors that are not
// a *domain.ConversionError and recovered panics become internal errors.
func run[T any](rec *recorder, body func() (T, error)) (result domain.Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			result = domain.Fail[T](domain.NewInternalError(fmt.Sprintf("panic: %v", p)), rec.steps)
		}
	}()

	value, err := body()
	if err != nil {
		return domain.Fail[T](domain.AsConversionError(err), rec.steps)
	}
	return domain.Succeed(value, rec.steps)
}
