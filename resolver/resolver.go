//Package resolver implements name to type resolution with permanent
//positive and negative memoization, and base type resolution over
//precomputed, cached ancestor chains.
package resolver

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/viant/typely/module"
	"github.com/viant/typely/shared"
	"github.com/viant/xreflect"
)

type (
	//Service resolves qualified or simple type names against the in scope
	//modules. Every outcome, including absence, is memoized for the life
	//of the service; Reset discards all caches.
	Service struct {
		scope     *module.Scope
		wellKnown []string

		mux       sync.Mutex
		types     *xreflect.Types
		named     map[string]*module.Definition
		byType    map[reflect.Type]*module.Definition
		ancestors map[reflect.Type][]reflect.Type
		base      map[reflect.Type]reflect.Type
	}

	//Option customizes the resolver
	Option func(s *Service)
)

//WithWellKnownPackages designates package paths tried as qualified name
//guesses before the linear module scan
func WithWellKnownPackages(pkgPaths ...string) Option {
	return func(s *Service) {
		s.wellKnown = append(s.wellKnown, pkgPaths...)
	}
}

//New creates a resolver over the supplied scope
func New(scope *module.Scope, opts ...Option) *Service {
	ret := &Service{scope: scope}
	for _, opt := range opts {
		opt(ret)
	}
	ret.reset()
	return ret
}

//Scope returns the underlying module scope
func (s *Service) Scope() *module.Scope {
	return s.scope
}

//Reset discards all resolution caches and rebuilds the module scope on
//next use
func (s *Service) Reset() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.reset()
	s.scope.Rebuild()
}

func (s *Service) reset() {
	s.types = xreflect.NewTypes()
	s.named = map[string]*module.Definition{}
	s.byType = map[reflect.Type]*module.Definition{}
	s.ancestors = map[reflect.Type][]reflect.Type{}
	s.base = map[reflect.Type]reflect.Type{}
}

//ResolveType resolves a type name to its definition. Resolution order:
//memoized outcome, qualified guesses against well known packages, then a
//linear scan of in scope modules; the first match wins and ambiguity is
//not detected. A nil result means the name is absent and stays absent.
func (s *Service) ResolveType(name string) *module.Definition {
	if name == "" {
		return nil
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if def, ok := s.named[name]; ok {
		return def
	}
	def := s.lookup(name)
	s.named[name] = def
	if def == nil {
		shared.Log("unable to resolve type: %v", name)
		return nil
	}
	if def.Type() != nil {
		_ = s.types.Register(def.Name(),
			xreflect.WithPackage(def.PkgPath()),
			xreflect.WithReflectType(def.Type()))
	}
	return def
}

//LookupType resolves a type name to a reflect type; it satisfies the
//xreflect lookup contract so the resolver can back type parsing
func (s *Service) LookupType(name string, opts ...xreflect.Option) (reflect.Type, error) {
	s.mux.Lock()
	if rType, err := s.types.Lookup(name, opts...); err == nil && rType != nil {
		s.mux.Unlock()
		return rType, nil
	}
	s.mux.Unlock()
	def := s.ResolveType(name)
	if def == nil || def.Type() == nil {
		return nil, errors.Errorf("failed to lookup type: %v", name)
	}
	return def.Type(), nil
}

func (s *Service) lookup(name string) *module.Definition {
	modules := s.scope.Modules()
	for _, pkgPath := range s.wellKnown {
		qualified := pkgPath + "." + name
		for _, candidate := range modules {
			if def := candidate.Lookup(qualified); def != nil {
				return def
			}
		}
	}
	for _, candidate := range modules {
		if def := candidate.Lookup(name); def != nil {
			return def
		}
	}
	return nil
}

//DefinitionOf returns the registered definition for a reflect type, or
//nil when no in scope module defines it
func (s *Service) DefinitionOf(rType reflect.Type) *module.Definition {
	if rType == nil {
		return nil
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.definitionOf(rType)
}

func (s *Service) definitionOf(rType reflect.Type) *module.Definition {
	if def, ok := s.byType[rType]; ok {
		return def
	}
	for _, candidate := range s.scope.Modules() {
		defs, err := candidate.Definitions()
		if err != nil {
			continue
		}
		for _, def := range defs {
			if def.Type() == rType {
				s.byType[rType] = def
				return def
			}
		}
	}
	return nil
}
