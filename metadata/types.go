package metadata

// Type is a type definition, reference, or specification. A Type carried
// by a signature may or may not be resolvable to a TypeDef; unresolvable
// references are a normal condition in obfuscated or partially-available
// binaries.
type Type interface {
	Name() string
	Namespace() string
	// FullName returns "Namespace.Name", or just "Name" when the
	// namespace is empty.
	FullName() string
}

// TypeDef is a type defined in the current universe. Enum facts live here:
// a def with a non-nil EnumUnderlying is an enum.
type TypeDef struct {
	TypeNamespace string
	TypeName      string

	// EnumUnderlying is the underlying primitive signature when this def
	// is an enum, nil otherwise.
	EnumUnderlying TypeSig
}

func (t *TypeDef) Name() string { return t.TypeName }

func (t *TypeDef) Namespace() string { return t.TypeNamespace }

func (t *TypeDef) FullName() string { return fullName(t.TypeNamespace, t.TypeName) }

// IsEnum reports whether this definition is an enum.
func (t *TypeDef) IsEnum() bool { return t.EnumUnderlying != nil }

// TypeRef is a reference to a type that may live in another assembly.
// Assembly is the simple name of the owning assembly, or empty when the
// reference is scoped to the current module.
type TypeRef struct {
	TypeNamespace string
	TypeName      string
	Assembly      string
}

func (t *TypeRef) Name() string { return t.TypeName }

func (t *TypeRef) Namespace() string { return t.TypeNamespace }

func (t *TypeRef) FullName() string { return fullName(t.TypeNamespace, t.TypeName) }

// TypeSpec wraps a type signature as a type, used where a def/ref slot
// holds an instantiated generic or array type.
type TypeSpec struct {
	Sig TypeSig
}

func (t *TypeSpec) Name() string { return t.Sig.String() }

func (t *TypeSpec) Namespace() string { return "" }

func (t *TypeSpec) FullName() string { return t.Sig.String() }

// MethodSig is a method signature: an ordered parameter-type list plus
// calling-convention facts the attribute decoder does not interpret.
type MethodSig struct {
	Params  []TypeSig
	Return  TypeSig
	HasThis bool
}

// MethodRef is a reference to a method, typically an attribute
// constructor. Declaring identifies the owner; when the owner is a
// TypeSpec wrapping a generic instantiation, the instantiation's type
// arguments drive generic substitution during decoding.
type MethodRef struct {
	MethodName string
	Declaring  Type
	Sig        *MethodSig
}

// GenericArgs returns the concrete type arguments of the declaring
// type's generic instantiation, or nil when the owner is not one.
func (m *MethodRef) GenericArgs() []TypeSig {
	spec, ok := m.Declaring.(*TypeSpec)
	if !ok {
		return nil
	}
	inst, ok := StripModifiers(spec.Sig).(*GenericInstSig)
	if !ok {
		return nil
	}
	return inst.Args
}

func fullName(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "." + name
}
