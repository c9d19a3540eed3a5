package typely

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/assertly"
	"github.com/viant/typely/module"
)

type Asset struct{}

type Texture struct {
	Asset
	Width int
}

type Mesh struct {
	Asset
	vertices int
}

type Drawer interface {
	Draw()
}

func (t *Texture) Draw() {}

type Context struct{}

func NewMesh(ctx *Context) *Mesh {
	return &Mesh{vertices: 3}
}

func testService(opts ...Option) *Service {
	core := module.New("engine.core",
		module.WithDefinitions(
			module.NewDefinition(reflect.TypeOf(Asset{}), module.WithAbstract()),
			module.NewDefinition(reflect.TypeOf(Texture{})),
			module.NewDefinition(reflect.TypeOf(Mesh{}), module.WithConstructors(NewMesh)),
		))
	editor := module.New("engine.editor", module.WithEditorOnly(),
		module.WithDefinitions(
			module.NewDefinition(reflect.TypeOf(Context{})),
		))
	return New(module.Modules{core, editor}, opts...)
}

func TestService(t *testing.T) {
	srv := testService()

	modules := srv.Modules()
	if !assert.EqualValues(t, 1, len(modules)) {
		return
	}
	assert.EqualValues(t, "engine.core", modules[0].Name())

	texture := srv.ResolveType("Texture")
	if !assert.NotNil(t, texture) {
		return
	}
	assert.EqualValues(t, reflect.TypeOf(Texture{}), texture.Type())

	asset := srv.ResolveType("Asset")
	if !assert.NotNil(t, asset) {
		return
	}

	derived := srv.FindDerivedTypes(asset)
	names := make([]string, 0, len(derived))
	for _, def := range derived {
		names = append(names, def.Name())
	}
	assert.EqualValues(t, []string{"Mesh", "Texture"}, names)

	root := srv.NearestAbstractAncestor(reflect.TypeOf(Texture{}))
	assert.EqualValues(t, reflect.TypeOf(Asset{}), root)

	drawer := reflect.TypeOf((*Drawer)(nil)).Elem()
	implementers := srv.FindInterfaceImplementers(drawer)
	if assert.EqualValues(t, 1, len(implementers)) {
		assert.EqualValues(t, "Texture", implementers[0].Name())
	}
	assert.True(t, srv.ImplementsInterface(reflect.TypeOf(Texture{}), drawer))
	assert.True(t, srv.IntroducesInterface(reflect.TypeOf(Texture{}), drawer))
	assert.False(t, srv.InheritsInterface(reflect.TypeOf(Texture{}), drawer))

	mesh := srv.ResolveType("Mesh")
	if !assert.NotNil(t, mesh) {
		return
	}
	constructors := srv.FindAllConstructors(mesh, true)
	if !assert.EqualValues(t, 1, len(constructors)) {
		return
	}
	best := srv.FindBestConstructor(mesh, []reflect.Type{reflect.TypeOf(&Context{})})
	if !assert.NotNil(t, best) {
		return
	}
	instance, err := best.NewInstance(&Context{})
	assert.Nil(t, err)
	assert.EqualValues(t, &Mesh{vertices: 3}, instance)

	value, err := srv.NewValue(texture)
	assert.Nil(t, err)
	assertly.AssertValues(t, Texture{}, value)
}

func TestService_LookupType(t *testing.T) {
	srv := testService(WithWellKnownPackages("github.com/viant/typely"))
	rType, err := srv.LookupType("Texture")
	assert.Nil(t, err)
	assert.EqualValues(t, reflect.TypeOf(Texture{}), rType)

	_, err = srv.LookupType("Unknown")
	assert.NotNil(t, err)
}

func TestService_Reset(t *testing.T) {
	srv := testService()
	assert.Nil(t, srv.ResolveType("Context"), "editor only module stays out of scope")
	srv.Reset()
	assert.Nil(t, srv.ResolveType("Context"))
	assert.NotNil(t, srv.ResolveType("Texture"))
}

func TestService_RootMarker(t *testing.T) {
	srv := testService(WithRootMarker(reflect.TypeOf(&Context{})))
	mesh := srv.ResolveType("Mesh")
	if !assert.NotNil(t, mesh) {
		return
	}
	best := srv.FindBestConstructor(mesh, nil)
	assert.NotNil(t, best, "marker assignable parameter qualifies without explicit support")

	filtered := srv.FilterTypesWithValidConstructors([]*module.Definition{mesh}, nil)
	assert.EqualValues(t, 1, len(filtered))
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version)
}
