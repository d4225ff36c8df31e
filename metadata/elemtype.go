package metadata

import "fmt"

// ElementType is an ECMA-335 II.23.1.16 element type code, the one-byte
// vocabulary used throughout signatures and (partially reused) by the
// custom-attribute value encoding.
type ElementType byte

const (
	ElemEnd         ElementType = 0x00 // Sentinel, marks end of a list
	ElemVoid        ElementType = 0x01
	ElemBoolean     ElementType = 0x02
	ElemChar        ElementType = 0x03
	ElemI1          ElementType = 0x04 // int8
	ElemU1          ElementType = 0x05 // uint8
	ElemI2          ElementType = 0x06 // int16
	ElemU2          ElementType = 0x07 // uint16
	ElemI4          ElementType = 0x08 // int32
	ElemU4          ElementType = 0x09 // uint32
	ElemI8          ElementType = 0x0A // int64
	ElemU8          ElementType = 0x0B // uint64
	ElemR4          ElementType = 0x0C // float32
	ElemR8          ElementType = 0x0D // float64
	ElemString      ElementType = 0x0E
	ElemPtr         ElementType = 0x0F // Followed by type
	ElemByRef       ElementType = 0x10 // Followed by type
	ElemValueType   ElementType = 0x11 // Followed by TypeDef/TypeRef token
	ElemClass       ElementType = 0x12 // Followed by TypeDef/TypeRef token
	ElemVar         ElementType = 0x13 // Generic type parameter, followed by number
	ElemArray       ElementType = 0x14 // Multi-dimensional array
	ElemGenericInst ElementType = 0x15 // Generic instantiation
	ElemTypedByRef  ElementType = 0x16
	ElemI           ElementType = 0x18 // native int
	ElemU           ElementType = 0x19 // native uint
	ElemFnPtr       ElementType = 0x1B
	ElemObject      ElementType = 0x1C // System.Object
	ElemSZArray     ElementType = 0x1D // Single-dimensional, zero lower bound
	ElemMVar        ElementType = 0x1E // Generic method parameter
	ElemCModReqd    ElementType = 0x1F // Required custom modifier
	ElemCModOpt     ElementType = 0x20 // Optional custom modifier
	ElemInternal    ElementType = 0x21
	ElemModule      ElementType = 0x3F
	ElemSentinel    ElementType = 0x41
	ElemPinned      ElementType = 0x45
)

// IsPrimitive reports whether the element type is one of the fixed-size
// primitives Boolean through R8.
func (e ElementType) IsPrimitive() bool {
	return e >= ElemBoolean && e <= ElemR8
}

// IsEnumUnderlying reports whether the element type may serve as an enum's
// underlying type (Boolean through U8).
func (e ElementType) IsEnumUnderlying() bool {
	return e >= ElemBoolean && e <= ElemU8
}

// corLibName maps primitive element types to their core-library type name.
var corLibName = map[ElementType]string{
	ElemVoid:    "Void",
	ElemBoolean: "Boolean",
	ElemChar:    "Char",
	ElemI1:      "SByte",
	ElemU1:      "Byte",
	ElemI2:      "Int16",
	ElemU2:      "UInt16",
	ElemI4:      "Int32",
	ElemU4:      "UInt32",
	ElemI8:      "Int64",
	ElemU8:      "UInt64",
	ElemR4:      "Single",
	ElemR8:      "Double",
	ElemString:  "String",
	ElemObject:  "Object",
	ElemI:       "IntPtr",
	ElemU:       "UIntPtr",
}

func (e ElementType) String() string {
	if name, ok := corLibName[e]; ok {
		return "System." + name
	}
	return fmt.Sprintf("ElementType(0x%02x)", byte(e))
}
