package attr

import "github.com/clrkit/cilmeta/metadata"

// serTag is a serialization tag: the one-byte discriminant preceding an
// encoded value (II.23.3). The primitive tags share their numeric values
// with the element-type codes; SZArray, Type, Boxed and Enum are specific
// to the attribute encoding.
//
// Two more cases of the format are deliberately NOT tags here: a declared
// enum parameter ("value type") and a declared System.Type/String/Object
// parameter ("class") never put a tag on the wire. Those paths dispatch
// on the declared type instead, via the decoder's readDeclaredEnum and
// readDeclaredRef.
type serTag byte

const (
	tagBoolean serTag = 0x02
	tagChar    serTag = 0x03
	tagI1      serTag = 0x04
	tagU1      serTag = 0x05
	tagI2      serTag = 0x06
	tagU2      serTag = 0x07
	tagI4      serTag = 0x08
	tagU4      serTag = 0x09
	tagI8      serTag = 0x0A
	tagU8      serTag = 0x0B
	tagR4      serTag = 0x0C
	tagR8      serTag = 0x0D
	tagString  serTag = 0x0E

	// tagSZArray marks a single-dimensional array descriptor.
	tagSZArray serTag = 0x1D

	// tagType marks a System.Type literal (length-prefixed type name).
	tagType serTag = 0x50

	// tagBoxed marks a tagged object: a boxed value whose runtime type
	// descriptor follows inline.
	tagBoxed serTag = 0x51

	// tagEnum marks an enum descriptor: a length-prefixed type name
	// followed by the underlying value.
	tagEnum serTag = 0x55
)

// Named-argument kind bytes.
const (
	kindField    byte = 0x53
	kindProperty byte = 0x54
)

// isPrimitiveTag reports whether the tag is one of Boolean..String.
func isPrimitiveTag(t serTag) bool {
	return t >= tagBoolean && t <= tagString
}

// nullMarker is the single-byte lookahead value marking a null string.
const nullMarker byte = 0xFF

// primitiveElem maps a primitive serialization tag to its element type.
// The two vocabularies coincide for this range; the conversion is kept
// explicit so the tag type never leaks into signature code.
func primitiveElem(t serTag) metadata.ElementType {
	return metadata.ElementType(t)
}
