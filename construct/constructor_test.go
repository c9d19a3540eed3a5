package construct

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/typely/module"
	"github.com/viant/typely/resolver"
)

type Clock struct{ zone string }
type Config struct{ Name string }

type Managed interface{ Handle() string }

type Session struct{ id string }

func (s Session) Handle() string { return s.id }

type Base struct{}
type Derived struct{ Base }

func NewDerived() *Derived             { return &Derived{} }
func NewDerivedWith(c Config) *Derived { return &Derived{} }
func NewDerivedFull(c Config, clock Clock) *Derived {
	return &Derived{}
}
func NewBase(c Config) *Base { return &Base{} }

func newService(defs ...*module.Definition) (*Service, *module.Module) {
	core := module.New("core", module.WithDefinitions(defs...))
	scope := module.NewScope(module.Modules{core})
	return New(resolver.New(scope)), core
}

func TestService_FindAllConstructors(t *testing.T) {
	service, core := newService(
		module.NewDefinition(reflect.TypeOf(Base{}), module.WithConstructors(NewBase)),
		module.NewDefinition(reflect.TypeOf(Derived{}),
			module.WithConstructors(NewDerived, NewDerivedWith, NewDerivedFull)),
	)
	derived := core.Lookup("Derived")

	own := service.FindAllConstructors(derived, false)
	assert.EqualValues(t, 3, len(own))

	flattened := service.FindAllConstructors(derived, true)
	assert.EqualValues(t, 4, len(flattened))
	assert.EqualValues(t, 1, flattened[3].Depth, "ancestor constructor carries its chain depth")
	assert.EqualValues(t, "Base", flattened[3].Owner.Name())
}

func TestService_FindBestConstructor(t *testing.T) {
	configType := reflect.TypeOf(Config{})
	clockType := reflect.TypeOf(Clock{})

	testCases := []struct {
		description string
		supported   []reflect.Type
		expectExact int //expected parameter count, -1 for none
	}{
		{
			description: "fullest supported constructor wins",
			supported:   []reflect.Type{configType, clockType},
			expectExact: 2,
		},
		{
			description: "partial support picks the matching subset",
			supported:   []reflect.Type{configType},
			expectExact: 1,
		},
		{
			description: "no supported parameters still matches the empty constructor",
			supported:   nil,
			expectExact: 0,
		},
	}

	for _, testCase := range testCases {
		service, core := newService(
			module.NewDefinition(reflect.TypeOf(Derived{}),
				module.WithConstructors(NewDerived, NewDerivedWith, NewDerivedFull)),
		)
		best := service.FindBestConstructor(core.Lookup("Derived"), testCase.supported)
		if !assert.NotNil(t, best, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expectExact, len(best.Params), testCase.description)
	}
}

func TestService_FindBestConstructor_NoneFound(t *testing.T) {
	service, core := newService(
		module.NewDefinition(reflect.TypeOf(Clock{}),
			module.WithConstructors(func(c Config) *Clock { return &Clock{} })),
	)
	best := service.FindBestConstructor(core.Lookup("Clock"), []reflect.Type{reflect.TypeOf(Session{})})
	assert.Nil(t, best, "no qualifying constructor yields a none result")
}

func TestService_RootMarkerFallback(t *testing.T) {
	managedType := reflect.TypeOf((*Managed)(nil)).Elem()
	core := module.New("core", module.WithDefinitions(
		module.NewDefinition(reflect.TypeOf(Clock{}),
			module.WithConstructors(func(s Session) *Clock { return &Clock{} })),
	))
	scope := module.NewScope(module.Modules{core})

	strict := New(resolver.New(scope))
	assert.Nil(t, strict.FindBestConstructor(core.Lookup("Clock"), nil),
		"without the marker the parameter is unsupported")

	permissive := New(resolver.New(scope), WithRootMarker(managedType))
	best := permissive.FindBestConstructor(core.Lookup("Clock"), nil)
	assert.NotNil(t, best, "marker assignable parameter bypasses the supported set")
}

func TestService_FilterTypesWithValidConstructors(t *testing.T) {
	configType := reflect.TypeOf(Config{})
	service, core := newService(
		module.NewDefinition(reflect.TypeOf(Derived{}), module.WithConstructors(NewDerivedWith)),
		module.NewDefinition(reflect.TypeOf(Clock{}),
			module.WithConstructors(func(s Session) *Clock { return &Clock{} })),
	)
	defs := []*module.Definition{core.Lookup("Derived"), core.Lookup("Clock")}
	filtered := service.FilterTypesWithValidConstructors(defs, []reflect.Type{configType})
	if assert.EqualValues(t, 1, len(filtered)) {
		assert.EqualValues(t, "Derived", filtered[0].Name())
	}
}
