package metadata

// Universe is the type-resolution surface the blob decoder queries. A
// Universe is half-open: ResolveDef may fail for types the universe
// cannot see, and lookups return nil for unknown names. Implementations
// must be safe for concurrent readers.
type Universe interface {
	// Core returns the well-known core-library type handles.
	Core() *CoreTypes

	// ResolveDef resolves a type def/ref to its definition. The second
	// result is false when the type cannot be resolved.
	ResolveDef(t Type) (*TypeDef, bool)

	// FindLocal looks up a non-nested type defined in the current
	// module/assembly, returning nil when no such type exists.
	FindLocal(namespace, name string) Type

	// FindCorLib looks up a non-nested type in the resolved core
	// library, returning nil when no such type exists.
	FindCorLib(namespace, name string) Type
}

// CoreTypes holds signature handles for the core-library types the
// attribute encoding can produce. All fields are non-nil.
type CoreTypes struct {
	Boolean *PrimitiveSig
	Char    *PrimitiveSig
	SByte   *PrimitiveSig
	Byte    *PrimitiveSig
	Int16   *PrimitiveSig
	UInt16  *PrimitiveSig
	Int32   *PrimitiveSig
	UInt32  *PrimitiveSig
	Int64   *PrimitiveSig
	UInt64  *PrimitiveSig
	Single  *PrimitiveSig
	Double  *PrimitiveSig
	String  *PrimitiveSig
	Object  *PrimitiveSig

	// Type is System.Type from the core library, the resolved type of
	// every type-literal argument.
	Type *ClassSig
}

// NewCoreTypes builds the core-type handles. corlib is the simple name of
// the core library assembly ("mscorlib", "System.Runtime", ...).
func NewCoreTypes(corlib string) *CoreTypes {
	return &CoreTypes{
		Boolean: &PrimitiveSig{elem: ElemBoolean},
		Char:    &PrimitiveSig{elem: ElemChar},
		SByte:   &PrimitiveSig{elem: ElemI1},
		Byte:    &PrimitiveSig{elem: ElemU1},
		Int16:   &PrimitiveSig{elem: ElemI2},
		UInt16:  &PrimitiveSig{elem: ElemU2},
		Int32:   &PrimitiveSig{elem: ElemI4},
		UInt32:  &PrimitiveSig{elem: ElemU4},
		Int64:   &PrimitiveSig{elem: ElemI8},
		UInt64:  &PrimitiveSig{elem: ElemU8},
		Single:  &PrimitiveSig{elem: ElemR4},
		Double:  &PrimitiveSig{elem: ElemR8},
		String:  &PrimitiveSig{elem: ElemString},
		Object:  &PrimitiveSig{elem: ElemObject},
		Type: &ClassSig{Type: &TypeRef{
			TypeNamespace: "System",
			TypeName:      "Type",
			Assembly:      corlib,
		}},
	}
}

// Primitive returns the handle for a primitive element type, or nil when
// the element type is not a core primitive.
func (c *CoreTypes) Primitive(e ElementType) *PrimitiveSig {
	switch e {
	case ElemBoolean:
		return c.Boolean
	case ElemChar:
		return c.Char
	case ElemI1:
		return c.SByte
	case ElemU1:
		return c.Byte
	case ElemI2:
		return c.Int16
	case ElemU2:
		return c.UInt16
	case ElemI4:
		return c.Int32
	case ElemU4:
		return c.UInt32
	case ElemI8:
		return c.Int64
	case ElemU8:
		return c.UInt64
	case ElemR4:
		return c.Single
	case ElemR8:
		return c.Double
	case ElemString:
		return c.String
	case ElemObject:
		return c.Object
	default:
		return nil
	}
}
