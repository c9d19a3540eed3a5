//Package binding resolves and gets or sets object members by path for
//generic data binding. Resolution failures are diagnostics, never
//errors; callers check for absence.
package binding

import (
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/viant/structology"
	"github.com/viant/tagly/format/text"
	"github.com/viant/typely/shared"
	"github.com/viant/typely/shared/logging"
	"github.com/viant/xunsafe"
)

//Kind discriminates resolved member descriptors
type Kind string

const (
	//KindField is a struct field member
	KindField = Kind("field")
	//KindProperty is a getter method member
	KindProperty = Kind("property")
	//KindSelector is a nested path member resolved with a state selector
	KindSelector = Kind("selector")
)

//Member describes a resolved field, property or nested path member of a
//target type
type Member struct {
	kind      Kind
	name      string
	owner     reflect.Type
	field     *xunsafe.Field
	getter    reflect.Method
	setter    string
	stateType *structology.StateType
	path      string
}

var loggerMux sync.Mutex
var logger logging.Logger

//SetLogger overrides the package diagnostics logger
func SetLogger(aLogger logging.Logger) {
	loggerMux.Lock()
	defer loggerMux.Unlock()
	logger = aLogger
}

func diagnostics() logging.Logger {
	loggerMux.Lock()
	defer loggerMux.Unlock()
	if logger == nil {
		logger = logging.Default()
	}
	return logger
}

//Kind returns the member kind
func (m *Member) Kind() Kind {
	return m.kind
}

//Name returns the resolved member name
func (m *Member) Name() string {
	return m.name
}

//Type returns the member value type, nil for selector members
func (m *Member) Type() reflect.Type {
	switch m.kind {
	case KindField:
		return m.field.Type
	case KindProperty:
		return m.getter.Type.Out(0)
	}
	return nil
}

//resolveMember locates the first field or readable property of targetType
//matching name; nested dotted paths resolve through a state selector
func resolveMember(targetType reflect.Type, name string) *Member {
	if targetType == nil || name == "" {
		return nil
	}
	if strings.Contains(name, ".") {
		return resolveSelector(targetType, name)
	}
	structType := shared.Elem(targetType)
	if structType.Kind() == reflect.Struct {
		if field := matchField(structType, name); field != nil {
			return &Member{kind: KindField, name: field.Name, owner: structType, field: field}
		}
	}
	return resolveProperty(targetType, name)
}

//matchField locates a field by exact name, upper camel variant, then a
//case insensitive pass
func matchField(structType reflect.Type, name string) *xunsafe.Field {
	if field := xunsafe.FieldByName(structType, name); field != nil {
		return field
	}
	upperCamel := text.DetectCaseFormat(name).To(text.CaseFormatUpperCamel).Format(name)
	if upperCamel != name {
		if field := xunsafe.FieldByName(structType, upperCamel); field != nil {
			return field
		}
	}
	lowerName := strings.ToLower(name)
	for i := 0; i < structType.NumField(); i++ {
		sField := structType.Field(i)
		if sField.PkgPath != "" {
			continue
		}
		if strings.ToLower(sField.Name) == lowerName {
			return xunsafe.NewField(sField)
		}
	}
	return nil
}

//resolveProperty locates a readable property: an exported, zero argument
//method returning a value; a matching Set method, when present, makes the
//property writable
func resolveProperty(targetType reflect.Type, name string) *Member {
	candidates := []string{name, text.DetectCaseFormat(name).To(text.CaseFormatUpperCamel).Format(name)}
	for _, candidate := range candidates {
		method, ok := targetType.MethodByName(candidate)
		if !ok {
			continue
		}
		if method.Type.NumIn() != 1 || method.Type.NumOut() == 0 {
			continue
		}
		ret := &Member{kind: KindProperty, name: method.Name, owner: targetType, getter: method}
		if setter, ok := targetType.MethodByName("Set" + method.Name); ok {
			if setter.Type.NumIn() == 2 {
				ret.setter = setter.Name
			}
		}
		return ret
	}
	return nil
}

func resolveSelector(targetType reflect.Type, path string) *Member {
	structType := targetType
	if shared.Elem(structType).Kind() != reflect.Struct {
		return nil
	}
	stateType := structology.NewStateType(structType)
	if stateType == nil || stateType.Lookup(path) == nil {
		return nil
	}
	return &Member{kind: KindSelector, name: path, owner: targetType, stateType: stateType, path: path}
}

//Value returns the member value on the supplied target, dispatching on
//the member kind; ok is false when the member is neither a field, a
//property nor a selector, or when evaluation fails
func Value(member *Member, target interface{}) (interface{}, bool) {
	if member == nil || target == nil {
		return nil, false
	}
	switch member.kind {
	case KindField:
		ptr := xunsafe.AsPointer(target)
		if ptr == nil {
			return nil, false
		}
		return member.field.Value(ptr), true
	case KindProperty:
		getter := reflect.ValueOf(target).MethodByName(member.name)
		if !getter.IsValid() {
			return nil, false
		}
		out := getter.Call(nil)
		return out[0].Interface(), true
	case KindSelector:
		state := member.stateType.WithValue(target)
		value, err := state.Value(member.path)
		if err != nil {
			return nil, false
		}
		return value, true
	}
	return nil, false
}

//SetValue assigns the member on the supplied target; setting a read only
//property is an explicit error rather than a silent no-op
func SetValue(member *Member, target interface{}, value interface{}) error {
	if member == nil {
		return errors.New("member was nil")
	}
	if target == nil {
		return errors.New("target was nil")
	}
	switch member.kind {
	case KindField:
		ptr := xunsafe.AsPointer(target)
		if ptr == nil {
			return errors.Errorf("failed to address target %T", target)
		}
		coerced, err := coerce(value, member.field.Type)
		if err != nil {
			return errors.Wrapf(err, "failed to set %v", member.name)
		}
		member.field.SetValue(ptr, coerced)
		return nil
	case KindProperty:
		if member.setter == "" {
			return errors.Errorf("property %v of %v is read only", member.name, member.owner)
		}
		setter := reflect.ValueOf(target).MethodByName(member.setter)
		if !setter.IsValid() {
			return errors.Errorf("failed to locate setter %v on %T", member.setter, target)
		}
		coerced, err := coerce(value, setter.Type().In(0))
		if err != nil {
			return errors.Wrapf(err, "failed to set %v", member.name)
		}
		setter.Call([]reflect.Value{reflect.ValueOf(coerced)})
		return nil
	case KindSelector:
		state := member.stateType.WithValue(target)
		return state.SetValue(member.path, value)
	}
	return errors.Errorf("unsupported member kind: %v", member.kind)
}
