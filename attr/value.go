package attr

import (
	"fmt"
	"strings"

	"github.com/clrkit/cilmeta/metadata"
)

// CustomAttribute is the decoded form of one custom-attribute blob.
//
// On success, Fixed holds one argument per constructor parameter in
// declaration order and Named holds the encoded named arguments in
// order; Raw is nil. When the blob could not be decoded, Raw holds the
// original undecoded bytes and Fixed/Named are nil — never a partial
// structure.
type CustomAttribute struct {
	Ctor  *metadata.MethodRef
	Fixed []Argument
	Named []NamedArgument
	Raw   []byte
}

// IsRaw reports whether decoding degraded to the raw blob bytes.
func (ca *CustomAttribute) IsRaw() bool { return ca.Raw != nil }

// Argument is one decoded value with its resolved concrete type. The
// resolved type may differ from the declared parameter type: a declared
// System.Object parameter resolves to the boxed value's runtime type.
//
// Value holds one of: bool, Char, int8, uint8, int16, uint16, int32,
// uint32, int64, uint64, float32, float64, string, metadata.TypeSig (a
// System.Type literal), []Argument (array elements), or nil (null
// string, null type literal, or null array).
type Argument struct {
	Type  metadata.TypeSig
	Value any
}

// Char is a decoded System.Char value: a UTF-16 code unit. A distinct
// type keeps char arguments apart from int32 enum values.
type Char uint16

func (c Char) String() string { return string(rune(c)) }

func (a Argument) String() string {
	return fmt.Sprintf("%s(%s)", a.Type, formatValue(a.Value))
}

// NamedArgument is a field or property assignment following the fixed
// arguments. Name is nil when the encoded name is the null string.
type NamedArgument struct {
	Argument
	Name    *string
	IsField bool
}

func (n NamedArgument) String() string {
	kind := "property"
	if n.IsField {
		kind = "field"
	}
	name := "<nil>"
	if n.Name != nil {
		name = *n.Name
	}
	return fmt.Sprintf("%s %s = %s", kind, name, n.Argument)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", val)
	case Char:
		return fmt.Sprintf("%q", rune(val))
	case metadata.TypeSig:
		return "typeof(" + val.String() + ")"
	case []Argument:
		parts := make([]string, len(val))
		for i, a := range val {
			parts[i] = formatValue(a.Value)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", val)
	}
}
