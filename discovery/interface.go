package discovery

import (
	"reflect"

	"github.com/viant/typely/module"
)

//FindInterfaceImplementers returns concrete, non generic types whose
//interface set contains ifaceType, directly or transitively; when modules
//are supplied the scan is restricted to them
func (s *Service) FindInterfaceImplementers(ifaceType reflect.Type, modules ...*module.Module) []*module.Definition {
	if ifaceType == nil || ifaceType.Kind() != reflect.Interface {
		return nil
	}
	var ret []*module.Definition
	s.scan(modules, func(def *module.Definition) {
		if def.IsInterface() || def.IsAbstract() || def.IsGenericFamily() || def.IsGenericInstance() {
			return
		}
		if implements(def.Type(), ifaceType) {
			ret = append(ret, def)
		}
	})
	sortByTypeName(ret)
	return ret
}

//ImplementsInterface reports whether ifaceType appears in rType's
//interface set; ifaceType has to be an interface
func (s *Service) ImplementsInterface(rType, ifaceType reflect.Type) bool {
	if rType == nil || ifaceType == nil || ifaceType.Kind() != reflect.Interface {
		return false
	}
	return implements(rType, ifaceType)
}

//IntroducesInterface reports whether rType is the first type on its base
//chain to carry ifaceType, i.e. rType implements it while no ancestor
//does
func (s *Service) IntroducesInterface(rType, ifaceType reflect.Type) bool {
	if !s.ImplementsInterface(rType, ifaceType) {
		return false
	}
	return !s.ancestorImplements(rType, ifaceType)
}

//InheritsInterface reports whether rType merely possesses ifaceType, an
//ancestor already carrying it
func (s *Service) InheritsInterface(rType, ifaceType reflect.Type) bool {
	if !s.ImplementsInterface(rType, ifaceType) {
		return false
	}
	return s.ancestorImplements(rType, ifaceType)
}

func (s *Service) ancestorImplements(rType, ifaceType reflect.Type) bool {
	for _, ancestor := range s.resolver.Ancestors(rType) {
		if implements(ancestor, ifaceType) {
			return true
		}
	}
	return false
}

func implements(rType, ifaceType reflect.Type) bool {
	if rType == nil {
		return false
	}
	if rType.Implements(ifaceType) {
		return true
	}
	if rType.Kind() != reflect.Ptr {
		return reflect.PtrTo(rType).Implements(ifaceType)
	}
	return false
}
