// Package attr decodes the ECMA-335 custom-attribute argument encoding
// (II.23.3) from a #Blob heap.
//
// Given a constructor reference and a positioned blob cursor, the decoder
// reconstructs the ordered fixed arguments and the named field/property
// arguments, resolving each value's concrete type: primitives, strings,
// enums (including enums whose definitions cannot be seen), System.Type
// literals, boxed object values, arrays, and generic-parameter
// substitutions from the constructor's owning instantiation.
//
// The decoder is built to survive hostile input. Any parse or I/O fault
// anywhere in a blob aborts that decode only: the caller receives the
// original raw bytes (CustomAttribute.Raw) instead of a partial
// structure, so one malformed attribute never stops a binary from
// loading. Nesting depth is bounded, so adversarially deep
// array/object chains fail cleanly instead of exhausting the stack.
package attr
