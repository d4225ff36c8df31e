package metadata

import "sync"

// Module is an in-memory Universe for hosts that assemble type
// information themselves, and for tests and tooling. It models a single
// current module plus a set of known core-library definitions.
//
// Registration is expected to finish before decoding starts; lookups are
// guarded so concurrent decode calls stay safe regardless.
type Module struct {
	mu     sync.RWMutex
	core   *CoreTypes
	local  map[string]*TypeDef
	corlib map[string]*TypeDef
}

// NewModule creates an empty module whose core library has the given
// assembly name.
func NewModule(corlib string) *Module {
	return &Module{
		core:   NewCoreTypes(corlib),
		local:  make(map[string]*TypeDef),
		corlib: make(map[string]*TypeDef),
	}
}

// AddType registers a type definition in the current module.
func (m *Module) AddType(def *TypeDef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.local[def.FullName()] = def
}

// AddCorLibType registers a type definition owned by the core library.
func (m *Module) AddCorLibType(def *TypeDef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.corlib[def.FullName()] = def
}

// DefineEnum registers an enum definition in the current module and
// returns it.
func (m *Module) DefineEnum(namespace, name string, underlying TypeSig) *TypeDef {
	def := &TypeDef{
		TypeNamespace:  namespace,
		TypeName:       name,
		EnumUnderlying: underlying,
	}
	m.AddType(def)
	return def
}

// Core implements Universe.
func (m *Module) Core() *CoreTypes { return m.core }

// ResolveDef implements Universe. Defs resolve to themselves; refs and
// specs resolve by full name against the current module and then the
// core library.
func (m *Module) ResolveDef(t Type) (*TypeDef, bool) {
	switch v := t.(type) {
	case *TypeDef:
		return v, true
	case *TypeSpec:
		inner := SigType(v.Sig)
		if inner == nil {
			return nil, false
		}
		return m.ResolveDef(inner)
	case *TypeRef:
		m.mu.RLock()
		defer m.mu.RUnlock()
		if def, ok := m.local[v.FullName()]; ok {
			return def, true
		}
		if def, ok := m.corlib[v.FullName()]; ok {
			return def, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// FindLocal implements Universe.
func (m *Module) FindLocal(namespace, name string) Type {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if def, ok := m.local[fullName(namespace, name)]; ok {
		return def
	}
	return nil
}

// FindCorLib implements Universe.
func (m *Module) FindCorLib(namespace, name string) Type {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if def, ok := m.corlib[fullName(namespace, name)]; ok {
		return def
	}
	return nil
}
