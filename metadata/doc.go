// Package metadata models the slice of the ECMA-335 type system that blob
// decoding needs to query: element-type codes, type signatures, type
// definitions and references, method signatures, and the Universe interface
// through which a decoder resolves types.
//
// The package deliberately does not load metadata tables from a PE file.
// It describes a half-open type universe: types referenced by a blob may
// resolve to a full definition, or remain unresolved references that
// downstream code degrades around.
//
// An in-memory Module implementation of Universe is provided for hosts
// that assemble the universe themselves (and for tests and tooling).
package metadata
