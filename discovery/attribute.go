package discovery

import (
	"reflect"

	"github.com/viant/typely/module"
)

//FindTypesWithAttribute returns types across in scope modules carrying an
//attribute assignable to the supplied marker type; modules that fail to
//enumerate are skipped with a warning
func (s *Service) FindTypesWithAttribute(marker reflect.Type, modules ...*module.Module) []*module.Definition {
	if marker == nil {
		return nil
	}
	return s.FindTypesWithAnyAttribute([]reflect.Type{marker}, modules...)
}

//FindTypesWithAnyAttribute returns types carrying an attribute assignable
//to any of the supplied marker types
func (s *Service) FindTypesWithAnyAttribute(markers []reflect.Type, modules ...*module.Module) []*module.Definition {
	if len(markers) == 0 {
		return nil
	}
	var ret []*module.Definition
	s.scan(modules, func(def *module.Definition) {
		if hasAnyAttribute(def, markers) {
			ret = append(ret, def)
		}
	})
	sortByTypeName(ret)
	return ret
}

func hasAnyAttribute(def *module.Definition, markers []reflect.Type) bool {
	attributes := def.Attributes()
	if len(attributes) == 0 {
		return false
	}
	for _, attribute := range attributes {
		attrType := reflect.TypeOf(attribute)
		if attrType == nil {
			continue
		}
		for _, marker := range markers {
			if marker == nil {
				continue
			}
			if attrType == marker || attrType.AssignableTo(marker) {
				return true
			}
		}
	}
	return false
}
