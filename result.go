package axiom

import "fmt"

// Kind classifies the result of a core operation that did not fully
// succeed. No Kind is fatal to the core itself; callers decide whether to
// surface it further.
type Kind int

const (
	// InvalidArgument covers a missing window, an out-of-range workspace,
	// or an invalid ratio. Handling: local no-op plus a warning log.
	InvalidArgument Kind = iota
	// InvariantViolation covers a tree-validator failure or an effects FBO
	// coming up incomplete. Handling: log an error, self-disable the
	// affected feature, keep the rest of the core alive.
	InvariantViolation
	// ParseError covers a malformed rules file. Handling: reject the new
	// file, keep the previously loaded rule set.
	ParseError
	// ResourceExhausted covers an allocation failure for a tree node or an
	// effect texture. Handling: roll back the partial mutation and abort
	// the triggering operation.
	ResourceExhausted
	// NotSupported covers a custom-layout trait method with no
	// implementation. Handling: return the documented sentinel value for
	// that method instead of erroring the caller's whole operation.
	NotSupported
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case InvariantViolation:
		return "invariant_violation"
	case ParseError:
		return "parse_error"
	case ResourceExhausted:
		return "resource_exhausted"
	case NotSupported:
		return "not_supported"
	default:
		return "unknown"
	}
}

// Result is the core's error type. It carries enough context to log or
// chain without a global mutable error-context table.
type Result struct {
	Kind    Kind
	Message string
	Func    string
	Cause   error
}

func (r *Result) Error() string {
	if r.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", r.Func, r.Kind, r.Message, r.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", r.Func, r.Kind, r.Message)
}

// Unwrap exposes the wrapped cause so errors.Is/errors.As work against a
// chain of Results.
func (r *Result) Unwrap() error {
	return r.Cause
}

// Errorf builds a new Result of the given Kind, attributed to fn, with a
// formatted message.
func Errorf(kind Kind, fn, format string, args ...any) *Result {
	return &Result{Kind: kind, Func: fn, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a new Result of the given Kind that chains cause.
func Wrap(kind Kind, fn string, cause error, format string, args ...any) *Result {
	return &Result{Kind: kind, Func: fn, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is a *Result of the given Kind.
func Is(err error, kind Kind) bool {
	r, ok := err.(*Result)
	return ok && r.Kind == kind
}
