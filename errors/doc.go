// Package errors provides structured error types for the cilmeta library.
//
// Errors are categorized by Phase (which decoding stage failed) and Kind
// (error category). The Error type carries the blob offset at which the
// fault was detected and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValue, errors.KindInvalidTag).
//		Offset(pos).
//		Detail("unknown serialization tag 0x%02x", tag).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidTag(errors.PhaseValue, pos, tag)
//	err := errors.RecursionLimit(pos, maxDepth)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
