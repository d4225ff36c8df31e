package attr

import (
	"strings"

	"github.com/clrkit/cilmeta/metadata"
	"github.com/clrkit/cilmeta/typename"
)

// assemblySearch decides which assembly owns a freshly-parsed type name:
// the current module/assembly is searched first, then the resolved core
// library. Nested names never match (the search covers non-nested types
// only) and fall through to an unresolved reference.
type assemblySearch struct {
	u metadata.Universe
}

func (s assemblySearch) lookup(namespace, name string) metadata.Type {
	if t := s.u.FindLocal(namespace, name); t != nil {
		return t
	}
	if t := s.u.FindCorLib(namespace, name); t != nil {
		return t
	}
	return nil
}

// resolveTypeName binds a parsed type name to a signature. An unbindable
// name degrades to an unresolved TypeRef rather than failing; only the
// recursion bound can abort here.
func (d *decoder) resolveTypeName(n *typename.Name) (metadata.TypeSig, error) {
	exit, err := d.enter()
	if err != nil {
		return nil, err
	}
	defer exit()

	base := d.bindTypeName(n)

	var sig metadata.TypeSig
	if def, ok := d.u.ResolveDef(base); ok && def.IsEnum() {
		sig = &metadata.ValueTypeSig{Type: base}
	} else {
		sig = &metadata.ClassSig{Type: base}
	}

	if len(n.GenericArgs) > 0 {
		args := make([]metadata.TypeSig, len(n.GenericArgs))
		for i, a := range n.GenericArgs {
			args[i], err = d.resolveTypeName(a)
			if err != nil {
				return nil, err
			}
		}
		sig = &metadata.GenericInstSig{Generic: sig, Args: args}
	}

	for i := 0; i < n.Arrays; i++ {
		sig = &metadata.SZArraySig{Element: sig}
	}
	return sig, nil
}

func (d *decoder) bindTypeName(n *typename.Name) metadata.Type {
	if len(n.Nested) == 0 {
		if t := d.search.lookup(n.Namespace, n.Name); t != nil {
			return t
		}
	}
	name := n.Name
	if len(n.Nested) > 0 {
		name += "+" + strings.Join(n.Nested, "+")
	}
	return &metadata.TypeRef{
		TypeNamespace: n.Namespace,
		TypeName:      name,
		Assembly:      n.Assembly,
	}
}

// enumUnderlyingOf resolves an enum signature's definition. The second
// result is false when the type cannot be resolved at all; a resolved
// non-enum definition reports an empty underlying signature, which the
// caller treats as a fault.
func (d *decoder) enumUnderlyingOf(sig metadata.TypeSig) (metadata.TypeSig, string, bool) {
	t := metadata.SigType(sig)
	if t == nil {
		return nil, sig.String(), false
	}
	def, ok := d.u.ResolveDef(t)
	if !ok {
		return nil, t.FullName(), false
	}
	return def.EnumUnderlying, def.FullName(), true
}
