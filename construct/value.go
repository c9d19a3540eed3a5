package construct

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/viant/typely/module"
)

//NewInstance invokes the constructor with the supplied arguments; a
//trailing error result, when declared, is surfaced
func (c *Constructor) NewInstance(args ...interface{}) (interface{}, error) {
	if len(args) != len(c.Params) {
		return nil, errors.Errorf("invalid argument count for %v constructor: expected %v, got %v",
			c.Owner.TypeName(), len(c.Params), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(c.Params[i])
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}
	out := c.Func.Call(in)
	switch len(out) {
	case 0:
		return nil, errors.Errorf("constructor of %v returned no value", c.Owner.TypeName())
	case 1:
		return out[0].Interface(), nil
	}
	if errValue := out[len(out)-1]; !errValue.IsNil() {
		err, _ := errValue.Interface().(error)
		return nil, errors.Wrapf(err, "failed to instantiate %v", c.Owner.TypeName())
	}
	return out[0].Interface(), nil
}

//NewValue creates a value for the supplied definition: an open generic
//definition is a fatal, descriptive error; a registered zero argument
//constructor is preferred, its failure wrapped and re-raised; otherwise
//a zero value of the definition's type is created
func NewValue(def *module.Definition) (interface{}, error) {
	if def == nil {
		return nil, errors.New("definition was nil")
	}
	if def.IsGenericFamily() {
		return nil, errors.Errorf("failed to create value of %v: generic parameters are unresolved", def.Name())
	}
	for _, ctor := range constructorsOf(def, 0) {
		if len(ctor.Params) != 0 {
			continue
		}
		value, err := ctor.NewInstance()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create value of %v", def.TypeName())
		}
		return value, nil
	}
	return newValue(def.Type())
}

func newValue(rType reflect.Type) (value interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("failed to create value of %v: %v", rType, r)
		}
	}()
	return NewRValue(rType).Interface(), nil
}

//NewRValue creates a reflect value of the supplied type, dereferencing a
//pointer type to an addressable instance
func NewRValue(p reflect.Type) reflect.Value {
	if p.Kind() == reflect.Ptr {
		return reflect.New(p.Elem())
	}
	return reflect.New(p).Elem()
}
