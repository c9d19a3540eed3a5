package binding

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/viant/toolbox"
)

//coerce adjusts a value to the destination type, falling back on toolbox
//conversions for scalar mismatches
func coerce(value interface{}, destType reflect.Type) (interface{}, error) {
	if value == nil {
		return reflect.Zero(destType).Interface(), nil
	}
	valueType := reflect.TypeOf(value)
	if valueType == destType {
		return value, nil
	}
	if valueType.AssignableTo(destType) {
		return value, nil
	}
	switch destType.Kind() {
	case reflect.String:
		return toolbox.AsString(value), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		coerced, err := toolbox.ToInt(value)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(coerced).Convert(destType).Interface(), nil
	case reflect.Float32, reflect.Float64:
		coerced, err := toolbox.ToFloat(value)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(coerced).Convert(destType).Interface(), nil
	case reflect.Bool:
		return toolbox.AsBoolean(value), nil
	}
	if valueType.ConvertibleTo(destType) {
		return reflect.ValueOf(value).Convert(destType).Interface(), nil
	}
	return nil, errors.Errorf("unable to coerce %T to %v", value, destType)
}

//As coerces a bound value to type T
func As[T any](value interface{}) (T, bool) {
	var ret T
	if value == nil {
		return ret, false
	}
	if actual, ok := value.(T); ok {
		return actual, true
	}
	destType := reflect.TypeOf(ret)
	if destType == nil {
		return ret, false
	}
	coerced, err := coerce(value, destType)
	if err != nil {
		return ret, false
	}
	actual, ok := coerced.(T)
	return actual, ok
}
