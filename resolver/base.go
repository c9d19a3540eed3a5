package resolver

import (
	"reflect"

	"github.com/viant/typely/shared"
)

//Ancestors returns the flattened base type chain of the supplied type,
//nearest first; it is computed once per type and cached. The chain
//follows an explicit base override when the type's definition carries
//one, otherwise the first embedded struct field.
func (s *Service) Ancestors(rType reflect.Type) []reflect.Type {
	if rType == nil {
		return nil
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.ancestorsOf(rType)
}

func (s *Service) ancestorsOf(rType reflect.Type) []reflect.Type {
	if chain, ok := s.ancestors[rType]; ok {
		return chain
	}
	var chain []reflect.Type
	seen := map[reflect.Type]bool{rType: true}
	for node := s.baseOf(rType); node != nil; node = s.baseOf(node) {
		if seen[node] {
			break
		}
		seen[node] = true
		chain = append(chain, node)
	}
	s.ancestors[rType] = chain
	return chain
}

func (s *Service) baseOf(rType reflect.Type) reflect.Type {
	if def := s.definitionOf(rType); def != nil && def.BaseTypeName() != "" {
		for _, candidate := range s.scope.Modules() {
			if base := candidate.Lookup(def.BaseTypeName()); base != nil {
				return base.Type()
			}
		}
		return nil
	}
	structType := rType
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.Anonymous {
			continue
		}
		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}
		if fieldType.Kind() == reflect.Struct {
			return fieldType
		}
	}
	return nil
}

//NearestAbstractAncestor walks the base chain of the supplied type and
//returns the abstract ancestor closest to the root of the chain; when no
//type on the chain is abstract it returns the supplied type itself. The
//result is memoized per type.
func (s *Service) NearestAbstractAncestor(rType reflect.Type) reflect.Type {
	if rType == nil {
		return nil
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if ret, ok := s.base[rType]; ok {
		return ret
	}
	ret := rType
	for _, node := range append([]reflect.Type{rType}, s.ancestorsOf(rType)...) {
		if s.isAbstract(node) {
			ret = node
		}
	}
	s.base[rType] = ret
	return ret
}

func (s *Service) isAbstract(rType reflect.Type) bool {
	if def := s.definitionOf(rType); def != nil {
		return def.IsAbstract()
	}
	return shared.Elem(rType).Kind() == reflect.Interface
}

//IsSubclassOf reports whether rType's base chain contains base; a type
//is never a subclass of itself
func (s *Service) IsSubclassOf(rType, base reflect.Type) bool {
	if rType == nil || base == nil || rType == base {
		return false
	}
	for _, node := range s.Ancestors(rType) {
		if node == base {
			return true
		}
	}
	return false
}

//SharesRawGenericFamily reports whether rType or any of its ancestors
//belongs to the raw generic family identified by familyName (a canonical
//type name with generic arguments stripped)
func (s *Service) SharesRawGenericFamily(rType reflect.Type, familyName string) bool {
	if rType == nil || familyName == "" {
		return false
	}
	if shared.RawTypeName(shared.TypeName(rType)) == familyName {
		return true
	}
	for _, node := range s.Ancestors(rType) {
		if shared.RawTypeName(shared.TypeName(node)) == familyName {
			return true
		}
	}
	return false
}
