//Package construct selects compatible constructors for dynamic
//instantiation. Constructor resolution is never cached; every call walks
//the type's flattened hierarchy anew.
package construct

import (
	"reflect"
	"sort"

	"github.com/viant/typely/module"
	"github.com/viant/typely/resolver"
)

type (
	//Constructor describes a constructor function belonging to a type or
	//one of its ancestors, with its ordered parameter types
	Constructor struct {
		Owner  *module.Definition
		Func   reflect.Value
		Params []reflect.Type
		Depth  int
	}

	//Service resolves constructors against registered type definitions
	Service struct {
		resolver   *resolver.Service
		rootMarker reflect.Type
	}

	//Option customizes the constructor resolver
	Option func(s *Service)
)

//WithRootMarker opts in the permissive parameter fallback: a parameter
//assignable to the marker type qualifies even when absent from the
//supported parameter set
func WithRootMarker(marker reflect.Type) Option {
	return func(s *Service) {
		s.rootMarker = marker
	}
}

//New creates a constructor resolver
func New(resolverSrv *resolver.Service, opts ...Option) *Service {
	ret := &Service{resolver: resolverSrv}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

//FindAllConstructors returns the constructors declared on def, plus, when
//includeBase is set, every constructor declared on each ancestor in the
//chain, most derived first
func (s *Service) FindAllConstructors(def *module.Definition, includeBase bool) []*Constructor {
	if def == nil {
		return nil
	}
	ret := constructorsOf(def, 0)
	if !includeBase || def.Type() == nil {
		return ret
	}
	for depth, ancestor := range s.resolver.Ancestors(def.Type()) {
		ancestorDef := s.resolver.DefinitionOf(ancestor)
		if ancestorDef == nil {
			continue
		}
		ret = append(ret, constructorsOf(ancestorDef, depth+1)...)
	}
	return ret
}

//FindBestConstructor returns the first constructor, ordered most derived
//first then by descending parameter count, whose every parameter type is
//present in the supported set or covered by the root marker fallback;
//nil when no constructor qualifies
func (s *Service) FindBestConstructor(def *module.Definition, supported []reflect.Type) *Constructor {
	candidates := s.FindAllConstructors(def, true)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Depth != candidates[j].Depth {
			return candidates[i].Depth < candidates[j].Depth
		}
		return len(candidates[i].Params) > len(candidates[j].Params)
	})
	for _, candidate := range candidates {
		if s.supports(candidate, supported) {
			return candidate
		}
	}
	return nil
}

//FilterTypesWithValidConstructors returns the subset of defs for which
//FindBestConstructor succeeds
func (s *Service) FilterTypesWithValidConstructors(defs []*module.Definition, supported []reflect.Type) []*module.Definition {
	var ret []*module.Definition
	for _, def := range defs {
		if s.FindBestConstructor(def, supported) != nil {
			ret = append(ret, def)
		}
	}
	return ret
}

func (s *Service) supports(candidate *Constructor, supported []reflect.Type) bool {
	for _, param := range candidate.Params {
		if containsType(supported, param) {
			continue
		}
		if s.rootMarker != nil && param.AssignableTo(s.rootMarker) {
			continue
		}
		return false
	}
	return true
}

func containsType(types []reflect.Type, rType reflect.Type) bool {
	for _, candidate := range types {
		if candidate == rType {
			return true
		}
	}
	return false
}

func constructorsOf(def *module.Definition, depth int) []*Constructor {
	var ret []*Constructor
	for _, fn := range def.Constructors() {
		fnValue := reflect.ValueOf(fn)
		if !fnValue.IsValid() || fnValue.Kind() != reflect.Func {
			continue
		}
		fnType := fnValue.Type()
		params := make([]reflect.Type, fnType.NumIn())
		for i := 0; i < fnType.NumIn(); i++ {
			params[i] = fnType.In(i)
		}
		ret = append(ret, &Constructor{
			Owner:  def,
			Func:   fnValue,
			Params: params,
			Depth:  depth,
		})
	}
	return ret
}
