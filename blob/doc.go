// Package blob provides access to an ECMA-335 #Blob heap and the
// positioned byte cursor used to decode blob contents.
//
// A Heap is an offset-addressed store of variable-length byte runs, each
// prefixed with a compressed length. Heap.OpenAt returns a pooled Reader
// over one blob; Close returns the reader to the pool. Readers built with
// NewReader wrap caller-owned bytes and need no Close.
//
// Reader exposes the primitive reads the attribute encoding needs:
// fixed-width little-endian integers and floats, a single byte with
// one-byte rewind, the compressed unsigned integer of II.23.2, raw byte
// spans, and position/length introspection. All reads fail with a
// position-annotated error instead of panicking when the blob runs out.
package blob
