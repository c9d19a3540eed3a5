package module

import (
	"reflect"

	"github.com/viant/typely/shared"
	"github.com/viant/x"
)

type (
	//Definition describes a single type contributed by a module; it pairs
	//a reflect type with host supplied metadata: abstractness, an optional
	//base type override, attached attribute values and constructor functions.
	//A definition created with NewGenericFamily has no reflect type and
	//stands for an open generic definition (type arguments unresolved).
	Definition struct {
		name         string
		pkgPath      string
		rType        reflect.Type
		xType        *x.Type
		abstract     bool
		base         string
		attributes   []interface{}
		constructors []interface{}
		tagKeys      []string
	}

	//DefinitionOption customizes a type definition
	DefinitionOption func(d *Definition)
)

//WithAbstract marks a struct definition abstract; interface definitions
//are abstract regardless of this option
func WithAbstract() DefinitionOption {
	return func(d *Definition) {
		d.abstract = true
	}
}

//WithBase overrides the inferred base type with the canonical name of
//another registered type
func WithBase(typeName string) DefinitionOption {
	return func(d *Definition) {
		d.base = typeName
	}
}

//WithName overrides the reflected simple name
func WithName(name string) DefinitionOption {
	return func(d *Definition) {
		d.name = name
	}
}

//WithAttributes attaches host metadata values to the definition; discovery
//matches them by assignability against an attribute marker type
func WithAttributes(attributes ...interface{}) DefinitionOption {
	return func(d *Definition) {
		d.attributes = append(d.attributes, attributes...)
	}
}

//WithConstructors registers constructor functions; each has to be a func
//returning the defined type (optionally with a trailing error)
func WithConstructors(constructors ...interface{}) DefinitionOption {
	return func(d *Definition) {
		d.constructors = append(d.constructors, constructors...)
	}
}

//WithTagAttributes surfaces the listed struct tag keys as TagAttribute
//values alongside the host attached attributes
func WithTagAttributes(keys ...string) DefinitionOption {
	return func(d *Definition) {
		d.tagKeys = append(d.tagKeys, keys...)
	}
}

//TagAttribute is a struct tag surfaced as a discoverable attribute
type TagAttribute struct {
	Field string
	Key   string
	Value string
}

//NewDefinition creates a type definition for the supplied reflect type
func NewDefinition(rType reflect.Type, opts ...DefinitionOption) *Definition {
	ret := &Definition{
		name:    shared.SimpleTypeName(rType),
		pkgPath: shared.Elem(rType).PkgPath(),
		rType:   rType,
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.xType = x.NewType(rType, x.WithName(ret.name), x.WithPkgPath(ret.pkgPath))
	return ret
}

//NewGenericFamily creates an open generic definition identified only by
//name; it has no reflect type and cannot be instantiated
func NewGenericFamily(name string, opts ...DefinitionOption) *Definition {
	ret := &Definition{name: shared.RawTypeName(name)}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

//Name returns the simple type name
func (d *Definition) Name() string {
	return d.name
}

//PkgPath returns the defining package path, empty for generic families
func (d *Definition) PkgPath() string {
	return d.pkgPath
}

//TypeName returns the canonical package qualified name, honoring a
//WithName override
func (d *Definition) TypeName() string {
	if d.pkgPath != "" {
		return d.pkgPath + "." + d.name
	}
	if d.rType != nil {
		return shared.TypeName(d.rType)
	}
	return d.name
}

//RawTypeName returns the canonical name with generic arguments stripped
func (d *Definition) RawTypeName() string {
	return shared.RawTypeName(d.TypeName())
}

//Type returns the underlying reflect type, nil for generic families
func (d *Definition) Type() reflect.Type {
	return d.rType
}

//XType returns the registered x.Type, nil for generic families
func (d *Definition) XType() *x.Type {
	return d.xType
}

//IsAbstract reports whether the definition cannot be instantiated directly
func (d *Definition) IsAbstract() bool {
	if d.abstract {
		return true
	}
	return d.IsInterface()
}

//IsInterface reports whether the defined type is an interface
func (d *Definition) IsInterface() bool {
	return d.rType != nil && d.rType.Kind() == reflect.Interface
}

//IsGenericFamily reports whether the definition is an open generic
func (d *Definition) IsGenericFamily() bool {
	return d.rType == nil
}

//IsGenericInstance reports whether the defined type carries concrete
//generic arguments
func (d *Definition) IsGenericInstance() bool {
	return d.rType != nil && shared.IsGenericInstance(d.rType.String())
}

//BaseTypeName returns the explicit base type override, if any
func (d *Definition) BaseTypeName() string {
	return d.base
}

//Constructors returns registered constructor functions
func (d *Definition) Constructors() []interface{} {
	return d.constructors
}

//Attributes returns host attached attribute values plus surfaced struct
//tag attributes
func (d *Definition) Attributes() []interface{} {
	if len(d.tagKeys) == 0 {
		return d.attributes
	}
	ret := make([]interface{}, len(d.attributes), len(d.attributes)+4)
	copy(ret, d.attributes)
	rType := d.rType
	if rType == nil {
		return ret
	}
	rType = shared.Elem(rType)
	if rType.Kind() != reflect.Struct {
		return ret
	}
	for i := 0; i < rType.NumField(); i++ {
		field := rType.Field(i)
		for _, key := range d.tagKeys {
			if value, ok := field.Tag.Lookup(key); ok {
				ret = append(ret, TagAttribute{Field: field.Name, Key: key, Value: value})
			}
		}
	}
	return ret
}
