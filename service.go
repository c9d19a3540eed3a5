//Package typely is an in memory, process lifetime type discovery and
//dynamic resolution layer: it discovers concrete types across registered
//code modules, resolves inheritance and interface relationships, selects
//compatible constructors for dynamic instantiation and resolves object
//members by path for generic data binding.
package typely

import (
	_ "embed"
	"reflect"

	"github.com/viant/typely/binding"
	"github.com/viant/typely/construct"
	"github.com/viant/typely/discovery"
	"github.com/viant/typely/module"
	"github.com/viant/typely/resolver"
	"github.com/viant/typely/shared/logging"
	"github.com/viant/xreflect"
)

//go:embed Version
var Version string

type (
	//Service is the library facade; it wires the module scope, the name
	//and base type resolver, the discovery engine and the constructor
	//resolver behind a single surface
	Service struct {
		scope     *module.Scope
		resolver  *resolver.Service
		discovery *discovery.Service
		construct *construct.Service
		logger    logging.Logger
	}

	//Option customizes the service
	Option func(s *Service, c *config)

	config struct {
		exclusions []string
		wellKnown  []string
		rootMarker reflect.Type
	}
)

//WithExclusions designates module name markers excluded from scope
func WithExclusions(markers ...string) Option {
	return func(s *Service, c *config) {
		c.exclusions = append(c.exclusions, markers...)
	}
}

//WithWellKnownPackages designates package paths tried as qualified name
//guesses during name resolution
func WithWellKnownPackages(pkgPaths ...string) Option {
	return func(s *Service, c *config) {
		c.wellKnown = append(c.wellKnown, pkgPaths...)
	}
}

//WithRootMarker opts in the permissive constructor parameter fallback
func WithRootMarker(marker reflect.Type) Option {
	return func(s *Service, c *config) {
		c.rootMarker = marker
	}
}

//WithLogger overrides the diagnostics logger
func WithLogger(logger logging.Logger) Option {
	return func(s *Service, c *config) {
		s.logger = logger
	}
}

//New creates a service over the supplied module provider
func New(provider module.Provider, opts ...Option) *Service {
	ret := &Service{}
	settings := &config{}
	for _, opt := range opts {
		opt(ret, settings)
	}
	if ret.logger == nil {
		ret.logger = logging.Default()
	}
	ret.scope = module.NewScope(provider,
		module.WithExclusions(settings.exclusions...),
		module.WithLogger(ret.logger))
	ret.resolver = resolver.New(ret.scope,
		resolver.WithWellKnownPackages(settings.wellKnown...))
	ret.discovery = discovery.New(ret.resolver, ret.logger)
	ret.construct = construct.New(ret.resolver,
		construct.WithRootMarker(settings.rootMarker))
	binding.SetLogger(ret.logger)
	return ret
}

//Modules returns the ordered in scope modules
func (s *Service) Modules() []*module.Module {
	return s.scope.Modules()
}

//Reset discards every cache; the next operation re-enumerates modules
func (s *Service) Reset() {
	s.resolver.Reset()
}

//ResolveType resolves a type name, memoizing the outcome permanently
func (s *Service) ResolveType(name string) *module.Definition {
	return s.resolver.ResolveType(name)
}

//LookupType returns the reflect type for a type name, failing with an
//error when the name resolves to nothing
func (s *Service) LookupType(name string, opts ...xreflect.Option) (reflect.Type, error) {
	return s.resolver.LookupType(name, opts...)
}

//DefinitionOf returns the definition registered for rType, or nil
func (s *Service) DefinitionOf(rType reflect.Type) *module.Definition {
	return s.resolver.DefinitionOf(rType)
}

//NearestAbstractAncestor returns the abstract ancestor closest to the
//root of rType's base chain, or rType itself when none is abstract
func (s *Service) NearestAbstractAncestor(rType reflect.Type) reflect.Type {
	return s.resolver.NearestAbstractAncestor(rType)
}

//FindDerivedTypes returns types deriving from base across in scope modules
func (s *Service) FindDerivedTypes(base *module.Definition, opts ...discovery.MatchOption) []*module.Definition {
	return s.discovery.FindDerivedTypes(base, opts...)
}

//FindSubclasses returns strict subclasses of base
func (s *Service) FindSubclasses(base *module.Definition, modules ...*module.Module) []*module.Definition {
	return s.discovery.FindSubclasses(base, modules...)
}

//FindInterfaceImplementers returns concrete types implementing ifaceType
func (s *Service) FindInterfaceImplementers(ifaceType reflect.Type, modules ...*module.Module) []*module.Definition {
	return s.discovery.FindInterfaceImplementers(ifaceType, modules...)
}

//ImplementsInterface reports whether ifaceType appears in rType's interface set
func (s *Service) ImplementsInterface(rType, ifaceType reflect.Type) bool {
	return s.discovery.ImplementsInterface(rType, ifaceType)
}

//IntroducesInterface reports whether rType first introduces ifaceType on its chain
func (s *Service) IntroducesInterface(rType, ifaceType reflect.Type) bool {
	return s.discovery.IntroducesInterface(rType, ifaceType)
}

//InheritsInterface reports whether rType possesses ifaceType through an ancestor
func (s *Service) InheritsInterface(rType, ifaceType reflect.Type) bool {
	return s.discovery.InheritsInterface(rType, ifaceType)
}

//FindTypesWithAttribute returns types carrying an attribute assignable to marker
func (s *Service) FindTypesWithAttribute(marker reflect.Type, modules ...*module.Module) []*module.Definition {
	return s.discovery.FindTypesWithAttribute(marker, modules...)
}

//FindTypesWithAnyAttribute returns types carrying an attribute assignable
//to any of the markers
func (s *Service) FindTypesWithAnyAttribute(markers []reflect.Type, modules ...*module.Module) []*module.Definition {
	return s.discovery.FindTypesWithAnyAttribute(markers, modules...)
}

//FindAllConstructors returns constructors of def, optionally including
//its ancestors' constructors
func (s *Service) FindAllConstructors(def *module.Definition, includeBase bool) []*construct.Constructor {
	return s.construct.FindAllConstructors(def, includeBase)
}

//FindBestConstructor returns the best matching constructor for the
//supported parameter set, or nil when none qualifies
func (s *Service) FindBestConstructor(def *module.Definition, supported []reflect.Type) *construct.Constructor {
	return s.construct.FindBestConstructor(def, supported)
}

//FilterTypesWithValidConstructors returns the defs with a qualifying constructor
func (s *Service) FilterTypesWithValidConstructors(defs []*module.Definition, supported []reflect.Type) []*module.Definition {
	return s.construct.FilterTypesWithValidConstructors(defs, supported)
}

//NewValue creates a value for the supplied definition
func (s *Service) NewValue(def *module.Definition) (interface{}, error) {
	return construct.NewValue(def)
}
