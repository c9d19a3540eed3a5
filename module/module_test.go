package module

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type account struct {
	ID   int
	Name string `json:"name"`
}

type ledger struct{}

func TestModule_Lookup(t *testing.T) {
	aModule := New("core", WithDefinitions(
		NewDefinition(reflect.TypeOf(account{})),
		NewDefinition(reflect.TypeOf(ledger{}), WithName("Ledger")),
	))

	testCases := []struct {
		description string
		name        string
		expect      string
	}{
		{
			description: "simple name",
			name:        "account",
			expect:      "github.com/viant/typely/module.account",
		},
		{
			description: "canonical name",
			name:        "github.com/viant/typely/module.account",
			expect:      "github.com/viant/typely/module.account",
		},
		{
			description: "renamed definition",
			name:        "Ledger",
			expect:      "github.com/viant/typely/module.Ledger",
		},
	}

	for _, testCase := range testCases {
		def := aModule.Lookup(testCase.name)
		if !assert.NotNil(t, def, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, def.TypeName(), testCase.description)
	}

	assert.Nil(t, aModule.Lookup("missing"))
}

func TestModule_Loader(t *testing.T) {
	var invoked int
	aModule := New("lazy", WithLoader(func() ([]*Definition, error) {
		invoked++
		return []*Definition{NewDefinition(reflect.TypeOf(account{}))}, nil
	}))

	defs, err := aModule.Definitions()
	assert.Nil(t, err)
	assert.EqualValues(t, 1, len(defs))

	_, _ = aModule.Definitions()
	assert.EqualValues(t, 1, invoked, "loader runs at most once")

	failing := New("broken", WithLoader(func() ([]*Definition, error) {
		return nil, errors.New("types could not be loaded")
	}))
	_, err = failing.Definitions()
	assert.NotNil(t, err)
	assert.Nil(t, failing.Lookup("account"))
}

func TestDefinition_Attributes(t *testing.T) {
	type exported struct{ Marker string }

	def := NewDefinition(reflect.TypeOf(account{}),
		WithAttributes(exported{Marker: "audited"}),
		WithTagAttributes("json"))

	attributes := def.Attributes()
	assert.EqualValues(t, 2, len(attributes))
	tagAttr, ok := attributes[1].(TagAttribute)
	if assert.True(t, ok) {
		assert.EqualValues(t, "Name", tagAttr.Field)
		assert.EqualValues(t, "name", tagAttr.Value)
	}
}

func TestDefinition_Abstract(t *testing.T) {
	type Reader interface{ Read() }
	ifaceDef := NewDefinition(reflect.TypeOf((*Reader)(nil)).Elem())
	assert.True(t, ifaceDef.IsInterface())
	assert.True(t, ifaceDef.IsAbstract())

	concrete := NewDefinition(reflect.TypeOf(account{}))
	assert.False(t, concrete.IsAbstract())

	abstract := NewDefinition(reflect.TypeOf(account{}), WithAbstract())
	assert.True(t, abstract.IsAbstract())
	assert.False(t, abstract.IsInterface())
}
