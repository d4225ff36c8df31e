// Package cilmeta provides decoding of ECMA-335 metadata blobs for managed
// binaries, centered on the custom-attribute argument encoding.
//
// A custom attribute is stored in the #Blob heap as a constructor call:
// a two-byte prolog, one encoded value per constructor parameter, and a
// trailing list of named field/property arguments. The encoding is
// tag-driven and context dependent: a declared parameter type usually
// implies the wire representation, but boxed values, enums and
// System.Type literals carry their own inline type information.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	cilmeta/             Root package with the library overview
//	├── attr/            Custom-attribute blob decoding (the core)
//	├── metadata/        Type universe: element types, signatures, defs/refs
//	├── blob/            Blob heap access and the positioned byte cursor
//	├── typename/        Reflection-style type-name parsing
//	├── errors/          Structured error types for parse and I/O faults
//	└── cmd/attrdump/    CLI for decoding and inspecting attribute blobs
//
// # Quick Start
//
// Decode a custom attribute from a blob heap:
//
//	heap := blob.NewHeap(data)
//	ca := attr.DecodeHeap(universe, ctor, heap, offset)
//	if ca.IsRaw() {
//	    // malformed blob, ca.Raw holds the original bytes
//	}
//	for _, arg := range ca.Fixed {
//	    fmt.Println(arg.Type, arg.Value)
//	}
//
// Decoding never fails hard: a malformed or obfuscated blob degrades to
// the raw, unparsed bytes so that one bad attribute cannot abort loading
// of the rest of the binary.
package cilmeta
