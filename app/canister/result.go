package canister

// Unit is the empty success value.
type Unit struct{}

// Result is the two-variant outcome of a fallible RPC method. Exactly one of
// Ok and Err is set.
type Result[T any] struct {
	Ok  *T      `json:"Ok,omitempty"`
	Err *string `json:"Err,omitempty"`
}

func resultOf[T any](value T, err error) Result[T] {
	if err != nil {
		msg := err.Error()
		return Result[T]{Err: &msg}
	}
	return Result[T]{Ok: &value}
}

// IsOk reports whether the call succeeded.
func (r Result[T]) IsOk() bool {
	return r.Err == nil
}

// Unwrap returns the success value, or the zero value and the error message.
func (r Result[T]) Unwrap() (T, string) {
	var zero T
	if r.Err != nil {
		return zero, *r.Err
	}
	if r.Ok == nil {
		return zero, ""
	}
	return *r.Ok, ""
}
