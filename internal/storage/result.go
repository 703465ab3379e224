package storage

// Code is the outcome tag carried by every Result.
type Code int

const (
	// CodeOk means the operation succeeded and the payload is valid.
	CodeOk Code = iota
	// CodeNotFound means the key (or individual) does not exist.
	CodeNotFound
	// CodeNotReady means the backend is unusable right now, e.g. an empty
	// dispatch wrapper or a remote client that has not connected yet.
	CodeNotReady
	// CodeUnprocessable means bytes were found but failed domain parsing.
	CodeUnprocessable
	// CodeError is an operational fault, described by the result message.
	CodeError
)

func (c Code) String() string {
	switch c {
	case CodeOk:
		return "ok"
	case CodeNotFound:
		return "not found"
	case CodeNotReady:
		return "not ready"
	case CodeUnprocessable:
		return "unprocessable entity"
	case CodeError:
		return "error"
	}
	return "unknown"
}

// Unit is the payload of operations that return no value.
type Unit = struct{}

// Result is the uniform outcome of every storage operation. Exactly one tag
// applies; the payload is meaningful only when Code is CodeOk.
type Result[T any] struct {
	Code    Code
	Value   T
	Message string
}

func Ok[T any](v T) Result[T]  { return Result[T]{Code: CodeOk, Value: v} }
func OkUnit() Result[Unit]     { return Result[Unit]{Code: CodeOk} }
func NotFound[T any]() Result[T] { return Result[T]{Code: CodeNotFound} }
func NotReady[T any]() Result[T] { return Result[T]{Code: CodeNotReady} }

// Unprocessable tags bytes that exist but do not parse as the domain format.
func Unprocessable[T any]() Result[T] { return Result[T]{Code: CodeUnprocessable} }

// Error tags an operational fault with a human-readable message.
func Error[T any](msg string) Result[T] { return Result[T]{Code: CodeError, Message: msg} }

// IsOk reports whether the result carries a success payload.
func (r Result[T]) IsOk() bool { return r.Code == CodeOk }

// IsError reports whether the result carries any non-success tag.
func (r Result[T]) IsError() bool { return r.Code != CodeOk }

// OrDefault returns the payload, or T's zero value for non-success tags.
func (r Result[T]) OrDefault() T {
	if r.Code == CodeOk {
		return r.Value
	}
	var zero T
	return zero
}

// Map transforms the success payload and preserves every other tag unchanged.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.Code == CodeOk {
		return Ok(f(r.Value))
	}
	return Result[U]{Code: r.Code, Message: r.Message}
}

// AndThen chains a follow-up operation on the success payload; non-success
// tags short-circuit unchanged.
func AndThen[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.Code == CodeOk {
		return f(r.Value)
	}
	return Result[U]{Code: r.Code, Message: r.Message}
}
