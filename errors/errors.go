package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which stage of blob decoding the error occurred in
type Phase string

const (
	PhaseSetup    Phase = "setup"    // constructor/signature resolution
	PhaseProlog   Phase = "prolog"   // format prolog
	PhaseFixed    Phase = "fixed"    // fixed (positional) arguments
	PhaseNamed    Phase = "named"    // named field/property arguments
	PhaseValue    Phase = "value"    // tagged value decoding
	PhaseTypeName Phase = "typename" // reflection type-name parsing
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidProlog    Kind = "invalid_prolog"
	KindInvalidTag       Kind = "invalid_tag"
	KindInvalidArray     Kind = "invalid_array"
	KindInvalidEnum      Kind = "invalid_enum"
	KindInvalidSignature Kind = "invalid_signature"
	KindInvalidTypeName  Kind = "invalid_type_name"
	KindRecursionLimit   Kind = "recursion_limit"
	KindTrailingBytes    Kind = "trailing_bytes"
	KindUnexpectedEOF    Kind = "unexpected_eof"
	KindOutOfBounds      Kind = "out_of_bounds"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset > 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Offset sets the blob offset at which the fault was detected
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidProlog creates an invalid prolog error
func InvalidProlog(offset int, got uint16) *Error {
	return &Error{
		Phase:  PhaseProlog,
		Kind:   KindInvalidProlog,
		Offset: offset,
		Detail: fmt.Sprintf("expected prolog 0x0001, got 0x%04x", got),
		Value:  got,
	}
}

// InvalidTag creates an invalid serialization tag error
func InvalidTag(phase Phase, offset int, tag byte) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidTag,
		Offset: offset,
		Detail: fmt.Sprintf("unknown serialization tag 0x%02x", tag),
		Value:  tag,
	}
}

// InvalidArrayLength creates an invalid array length error
func InvalidArrayLength(offset int, count int32) *Error {
	return &Error{
		Phase:  PhaseValue,
		Kind:   KindInvalidArray,
		Offset: offset,
		Detail: fmt.Sprintf("array count %d is negative or too large", count),
		Value:  count,
	}
}

// InvalidEnumUnderlying creates an error for an enum whose underlying type
// is not a valid primitive
func InvalidEnumUnderlying(offset int, typeName string) *Error {
	return &Error{
		Phase:  PhaseValue,
		Kind:   KindInvalidEnum,
		Offset: offset,
		Detail: fmt.Sprintf("%s is not a valid enum underlying type", typeName),
	}
}

// InvalidSignature creates an error for a constructor without a usable
// method signature
func InvalidSignature(detail string) *Error {
	return &Error{
		Phase:  PhaseSetup,
		Kind:   KindInvalidSignature,
		Detail: detail,
	}
}

// InvalidTypeName creates an error for a syntactically unparseable
// reflection type name
func InvalidTypeName(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseTypeName,
		Kind:   KindInvalidTypeName,
		Detail: fmt.Sprintf("cannot parse type name %q", name),
		Cause:  cause,
	}
}

// RecursionLimit creates a recursion depth exceeded error
func RecursionLimit(offset, maxDepth int) *Error {
	return &Error{
		Phase:  PhaseValue,
		Kind:   KindRecursionLimit,
		Offset: offset,
		Detail: fmt.Sprintf("nesting exceeds maximum depth %d", maxDepth),
	}
}

// TrailingBytes creates an error for leftover bytes after a decode that
// required full consumption
func TrailingBytes(offset, remaining int) *Error {
	return &Error{
		Phase:  PhaseValue,
		Kind:   KindTrailingBytes,
		Offset: offset,
		Detail: fmt.Sprintf("%d unconsumed bytes after guessed enum size", remaining),
	}
}

// UnexpectedEOF creates an error for a read past the end of the blob
func UnexpectedEOF(offset, want, have int) *Error {
	return &Error{
		Phase:  PhaseValue,
		Kind:   KindUnexpectedEOF,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, %d available", want, have),
	}
}

// OutOfBounds creates an error for a blob offset outside the heap
func OutOfBounds(offset, length int) *Error {
	return &Error{
		Phase:  PhaseSetup,
		Kind:   KindOutOfBounds,
		Offset: offset,
		Detail: fmt.Sprintf("offset %d out of bounds (heap size %d)", offset, length),
		Value:  offset,
	}
}

// Wrap wraps an existing error with phase and kind context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
