package module

import (
	"sync"

	"github.com/viant/x"
)

type (
	//Module is a named bundle of type definitions, the unit code modules
	//are modeled with. Definitions are either registered up front or
	//produced lazily by a loader; a failing loader marks the module as
	//unscannable, which discovery treats as a recoverable, per module
	//failure.
	Module struct {
		name       string
		editorOnly bool
		dynamic    bool
		loader     func() ([]*Definition, error)

		mux      sync.Mutex
		loaded   bool
		loadErr  error
		defs     []*Definition
		index    map[string]*Definition
		registry *x.Registry
	}

	//Option customizes a module
	Option func(m *Module)
)

//WithEditorOnly marks a module as editor tooling only; such modules are
//excluded from the discovery scope
func WithEditorOnly() Option {
	return func(m *Module) {
		m.editorOnly = true
	}
}

//WithDynamic marks a module as dynamically generated and non persistent;
//such modules are excluded from the discovery scope
func WithDynamic() Option {
	return func(m *Module) {
		m.dynamic = true
	}
}

//WithDefinitions registers type definitions up front
func WithDefinitions(defs ...*Definition) Option {
	return func(m *Module) {
		for _, def := range defs {
			m.register(def)
		}
	}
}

//WithLoader defers definition enumeration to the supplied loader; the
//loader runs at most once, on first use
func WithLoader(loader func() ([]*Definition, error)) Option {
	return func(m *Module) {
		m.loader = loader
	}
}

//New creates a module
func New(name string, opts ...Option) *Module {
	ret := &Module{
		name:     name,
		index:    map[string]*Definition{},
		registry: x.NewRegistry(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

//Name returns the module name
func (m *Module) Name() string {
	return m.name
}

//IsEditorOnly reports whether the module serves editor tooling only
func (m *Module) IsEditorOnly() bool {
	return m.editorOnly
}

//IsDynamic reports whether the module is dynamically generated
func (m *Module) IsDynamic() bool {
	return m.dynamic
}

//Register adds a definition to the module
func (m *Module) Register(def *Definition) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.register(def)
}

func (m *Module) register(def *Definition) {
	if def == nil {
		return
	}
	m.defs = append(m.defs, def)
	m.index[def.TypeName()] = def
	if xType := def.XType(); xType != nil {
		m.registry.Register(xType)
	}
}

//Definitions enumerates the module's type definitions, running the
//loader when one was supplied; a loader failure is returned to the
//caller and memoized
func (m *Module) Definitions() ([]*Definition, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if err := m.ensureLoaded(); err != nil {
		return nil, err
	}
	return m.defs, nil
}

func (m *Module) ensureLoaded() error {
	if m.loader == nil || m.loaded {
		return m.loadErr
	}
	m.loaded = true
	defs, err := m.loader()
	if err != nil {
		m.loadErr = err
		return err
	}
	for _, def := range defs {
		m.register(def)
	}
	return nil
}

//Lookup returns a definition matching a simple or canonical type name,
//or nil when the module does not define it
func (m *Module) Lookup(name string) *Definition {
	m.mux.Lock()
	defer m.mux.Unlock()
	if err := m.ensureLoaded(); err != nil {
		return nil
	}
	if xType := m.registry.Lookup(name); xType != nil {
		if def, ok := m.index[xType.Key()]; ok {
			return def
		}
	}
	if def, ok := m.index[name]; ok {
		return def
	}
	for _, def := range m.defs {
		if def.Name() == name {
			return def
		}
	}
	return nil
}
