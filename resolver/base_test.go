package resolver

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/typely/module"
)

type Component struct{}
type Behaviour struct{ Component }
type Mover struct{ Behaviour }

type Standalone struct{ ID int }
type Widget struct{ Standalone }

func TestService_NearestAbstractAncestor(t *testing.T) {
	core := module.New("core", module.WithDefinitions(
		module.NewDefinition(reflect.TypeOf(Component{}), module.WithAbstract()),
		module.NewDefinition(reflect.TypeOf(Behaviour{})),
		module.NewDefinition(reflect.TypeOf(Mover{})),
		module.NewDefinition(reflect.TypeOf(Standalone{})),
		module.NewDefinition(reflect.TypeOf(Widget{})),
	))
	service := New(module.NewScope(module.Modules{core}))

	testCases := []struct {
		description string
		rType       reflect.Type
		expect      reflect.Type
	}{
		{
			description: "abstract root wins over concrete mid",
			rType:       reflect.TypeOf(Mover{}),
			expect:      reflect.TypeOf(Component{}),
		},
		{
			description: "abstract ancestor of direct subclass",
			rType:       reflect.TypeOf(Behaviour{}),
			expect:      reflect.TypeOf(Component{}),
		},
		{
			description: "no abstract ancestor yields the type itself",
			rType:       reflect.TypeOf(Widget{}),
			expect:      reflect.TypeOf(Widget{}),
		},
	}

	for _, testCase := range testCases {
		actual := service.NearestAbstractAncestor(testCase.rType)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)

		//memoized outcome is identical
		again := service.NearestAbstractAncestor(testCase.rType)
		assert.EqualValues(t, actual, again, testCase.description)
	}
}

func TestService_Ancestors(t *testing.T) {
	core := module.New("core", module.WithDefinitions(
		module.NewDefinition(reflect.TypeOf(Component{})),
		module.NewDefinition(reflect.TypeOf(Behaviour{})),
		module.NewDefinition(reflect.TypeOf(Mover{})),
	))
	service := New(module.NewScope(module.Modules{core}))

	chain := service.Ancestors(reflect.TypeOf(Mover{}))
	expect := []reflect.Type{reflect.TypeOf(Behaviour{}), reflect.TypeOf(Component{})}
	assert.EqualValues(t, expect, chain)

	assert.True(t, service.IsSubclassOf(reflect.TypeOf(Mover{}), reflect.TypeOf(Component{})))
	assert.False(t, service.IsSubclassOf(reflect.TypeOf(Component{}), reflect.TypeOf(Component{})), "a type is not its own subclass")
	assert.False(t, service.IsSubclassOf(reflect.TypeOf(Component{}), reflect.TypeOf(Mover{})))
}

func TestService_ExplicitBaseOverride(t *testing.T) {
	core := module.New("core", module.WithDefinitions(
		module.NewDefinition(reflect.TypeOf(Standalone{})),
		module.NewDefinition(reflect.TypeOf(Widget{}),
			module.WithBase("github.com/viant/typely/resolver.Component")),
		module.NewDefinition(reflect.TypeOf(Component{}), module.WithAbstract()),
	))
	service := New(module.NewScope(module.Modules{core}))

	chain := service.Ancestors(reflect.TypeOf(Widget{}))
	if assert.EqualValues(t, 1, len(chain)) {
		assert.EqualValues(t, reflect.TypeOf(Component{}), chain[0], "explicit base overrides embedding")
	}
}
