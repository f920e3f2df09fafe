package shared

// State is the lifecycle of a request as seen by a front end.
type State string

const (
	StatePending State = "PENDING"
	StateSuccess State = "SUCCESS"
	StateFailure State = "FAILURE"
)

// FailureKind tells front ends which error display to use.
type FailureKind string

const (
	FailureNone          FailureKind = ""
	FailureInvalidInput  FailureKind = "INVALID_INPUT"
	FailureNotFound      FailureKind = "NOT_FOUND"
	FailureRequestFailed FailureKind = "REQUEST_FAILED"
)

// Result is the outcome of one operation: Pending, Success(value) or
// Failure(kind).
type Result[T any] struct {
	State State
	Value T
	Kind  FailureKind
	Err   error
}

// Pending returns a result that has not completed yet.
func Pending[T any]() Result[T] {
	return Result[T]{State: StatePending}
}

// Success wraps a completed value.
func Success[T any](v T) Result[T] {
	return Result[T]{State: StateSuccess, Value: v}
}

// Failure wraps a failed operation.
func Failure[T any](kind FailureKind, err error) Result[T] {
	return Result[T]{State: StateFailure, Kind: kind, Err: err}
}

func (r Result[T]) IsPending() bool { return r.State == StatePending }
func (r Result[T]) IsSuccess() bool { return r.State == StateSuccess }
func (r Result[T]) IsFailure() bool { return r.State == StateFailure }
