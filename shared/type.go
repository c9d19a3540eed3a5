package shared

import (
	"reflect"
	"strings"
)

//TypeName returns the canonical, package qualified type name
func TypeName(rType reflect.Type) string {
	if rType == nil {
		return ""
	}
	if rType.Kind() == reflect.Ptr {
		return "*" + TypeName(rType.Elem())
	}
	if pkgPath := rType.PkgPath(); pkgPath != "" {
		return pkgPath + "." + rType.Name()
	}
	return rType.String()
}

//SimpleTypeName returns an unqualified type name
func SimpleTypeName(rType reflect.Type) string {
	if rType == nil {
		return ""
	}
	if name := rType.Name(); name != "" {
		return name
	}
	return rType.String()
}

//RawTypeName strips generic type arguments from a canonical type name,
//i.e. "pkg.List[int]" and "pkg.List[string]" share the raw name "pkg.List"
func RawTypeName(name string) string {
	if index := strings.Index(name, "["); index != -1 {
		return name[:index]
	}
	return name
}

//IsGenericInstance reports whether a type name carries concrete type arguments
func IsGenericInstance(name string) bool {
	return strings.Index(name, "[") != -1
}
