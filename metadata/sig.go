package metadata

import (
	"strconv"
	"strings"
)

// TypeSig is a type signature: the shape a type takes inside method
// signatures, generic instantiations, and decoded attribute arguments.
type TypeSig interface {
	// Elem returns the element-type code this signature encodes as.
	Elem() ElementType
	String() string
}

// PrimitiveSig is a core-library primitive (Boolean through R8, String,
// Object). Obtain instances from CoreTypes rather than constructing them.
type PrimitiveSig struct {
	elem ElementType
}

func (s *PrimitiveSig) Elem() ElementType { return s.elem }

func (s *PrimitiveSig) String() string { return s.elem.String() }

// ClassSig is a reference type identified by a type def/ref.
type ClassSig struct {
	Type Type
}

func (s *ClassSig) Elem() ElementType { return ElemClass }

func (s *ClassSig) String() string { return s.Type.FullName() }

// ValueTypeSig is a value type (including enums) identified by a type
// def/ref.
type ValueTypeSig struct {
	Type Type
}

func (s *ValueTypeSig) Elem() ElementType { return ElemValueType }

func (s *ValueTypeSig) String() string { return s.Type.FullName() }

// SZArraySig is a single-dimensional, zero-lower-bound array.
type SZArraySig struct {
	Element TypeSig
}

func (s *SZArraySig) Elem() ElementType { return ElemSZArray }

func (s *SZArraySig) String() string { return s.Element.String() + "[]" }

// GenericVarSig is a generic parameter placeholder. Method is true for a
// method generic parameter (MVAR), false for a type parameter (VAR).
type GenericVarSig struct {
	Index  uint32
	Method bool
}

func (s *GenericVarSig) Elem() ElementType {
	if s.Method {
		return ElemMVar
	}
	return ElemVar
}

func (s *GenericVarSig) String() string {
	if s.Method {
		return "!!" + strconv.FormatUint(uint64(s.Index), 10)
	}
	return "!" + strconv.FormatUint(uint64(s.Index), 10)
}

// GenericInstSig is a generic type instantiated with concrete arguments.
// Generic is the open type (a ClassSig or ValueTypeSig), Args the
// instantiation arguments in declaration order.
type GenericInstSig struct {
	Generic TypeSig
	Args    []TypeSig
}

func (s *GenericInstSig) Elem() ElementType { return ElemGenericInst }

func (s *GenericInstSig) String() string {
	var b strings.Builder
	b.WriteString(s.Generic.String())
	b.WriteByte('<')
	for i, a := range s.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
	}
	b.WriteByte('>')
	return b.String()
}

// ModifierSig wraps a base signature with a required or optional custom
// modifier. Attribute decoding strips these before use.
type ModifierSig struct {
	Modifier Type
	Base     TypeSig
	Required bool
}

func (s *ModifierSig) Elem() ElementType {
	if s.Required {
		return ElemCModReqd
	}
	return ElemCModOpt
}

func (s *ModifierSig) String() string { return s.Base.String() }

// StripModifiers removes any custom-modifier wrappers and returns the
// underlying signature.
func StripModifiers(sig TypeSig) TypeSig {
	for {
		mod, ok := sig.(*ModifierSig)
		if !ok {
			return sig
		}
		sig = mod.Base
	}
}

// SigType returns the type def/ref behind a class, value-type or generic
// instantiation signature, or nil when the signature carries none.
func SigType(sig TypeSig) Type {
	switch s := StripModifiers(sig).(type) {
	case *ClassSig:
		return s.Type
	case *ValueTypeSig:
		return s.Type
	case *GenericInstSig:
		return SigType(s.Generic)
	default:
		return nil
	}
}
