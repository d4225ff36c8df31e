package attr

import "github.com/clrkit/cilmeta/metadata"

// genericResolver rewrites generic-parameter placeholders in declared
// signatures into the concrete arguments of the constructor's owning
// instantiation. It is built once per decode call and never mutated; the
// rewrite is a pure function of its input.
type genericResolver struct {
	args []metadata.TypeSig
}

func newGenericResolver(args []metadata.TypeSig) *genericResolver {
	return &genericResolver{args: args}
}

// resolve strips custom-modifier wrappers and substitutes type generic
// parameters, recursing through arrays and instantiations. Placeholders
// without a matching argument (and method generic parameters, which have
// no instantiation here) are left in place.
func (g *genericResolver) resolve(sig metadata.TypeSig) metadata.TypeSig {
	sig = metadata.StripModifiers(sig)
	switch s := sig.(type) {
	case *metadata.GenericVarSig:
		if !s.Method && int(s.Index) < len(g.args) {
			return g.resolve(g.args[s.Index])
		}
		return sig
	case *metadata.SZArraySig:
		return &metadata.SZArraySig{Element: g.resolve(s.Element)}
	case *metadata.GenericInstSig:
		args := make([]metadata.TypeSig, len(s.Args))
		for i, a := range s.Args {
			args[i] = g.resolve(a)
		}
		return &metadata.GenericInstSig{Generic: g.resolve(s.Generic), Args: args}
	default:
		return sig
	}
}
