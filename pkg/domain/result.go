package domain

// Result is what every conversion returns. On failure Value is the zero
// value, Error is set and Steps holds whatever was recorded before failing.
type Result[T any] struct {
	Success bool             `json:"success"`
	Value   T                `json:"value,omitempty"`
	Steps   []Step           `json:"steps"`
	Error   *ConversionError `json:"error,omitempty"`
}

// Succeed builds a successful result.
func Succeed[T any](value T, steps []Step) Result[T] {
	return Result[T]{Success: true, Value: value, Steps: nonNil(steps)}
}

// Fail builds a failed result.
func Fail[T any](err *ConversionError, steps []Step) Result[T] {
	return Result[T]{Error: err, Steps: nonNil(steps)}
}

// Err returns the failure as an error, or nil on success.
func (r Result[T]) Err() error {
	if r.Error == nil {
		return nil
	}
	return r.Error
}

func nonNil(steps []Step) []Step {
	if steps == nil {
		return []Step{}
	}
	return steps
}
