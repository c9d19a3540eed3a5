package binding

import (
	"reflect"

	"github.com/google/uuid"
)

//Map pairs an opaque source key, a non owning target reference and a
//member path; value resolution happens on demand, never eagerly. The
//record is immutable after creation except for Index, an editor ordering
//hint this package never reads.
type Map struct {
	SourceKey string
	Target    interface{}
	Path      string
	Index     int
}

//New creates a binding map; an empty source key is replaced with a
//generated one
func New(sourceKey string, target interface{}, path string) *Map {
	if sourceKey == "" {
		sourceKey = uuid.New().String()
	}
	return &Map{SourceKey: sourceKey, Target: target, Path: path}
}

//WithIndex sets the editor ordering hint
func (m *Map) WithIndex(index int) *Map {
	m.Index = index
	return m
}

//BoundValue resolves the mapped member on the target's runtime type and
//returns its current value with the member descriptor. An unset target,
//path or source key yields none; a missing member emits a diagnostic and
//yields none.
func (m *Map) BoundValue() (interface{}, *Member, bool) {
	if m == nil || m.Target == nil || m.Path == "" || m.SourceKey == "" {
		return nil, nil, false
	}
	member := resolveMember(reflect.TypeOf(m.Target), m.Path)
	if member == nil {
		diagnostics().Warn("failed to resolve bound member",
			"sourceKey", m.SourceKey, "path", m.Path, "target", reflect.TypeOf(m.Target).String())
		return nil, nil, false
	}
	value, ok := Value(member, m.Target)
	if !ok {
		diagnostics().Warn("failed to read bound member",
			"sourceKey", m.SourceKey, "path", m.Path, "target", reflect.TypeOf(m.Target).String())
		return nil, nil, false
	}
	return value, member, true
}

//BoundValueAs resolves the mapped member and coerces its value to type T
func BoundValueAs[T any](m *Map) (T, *Member, bool) {
	var ret T
	value, member, ok := m.BoundValue()
	if !ok {
		return ret, nil, false
	}
	actual, ok := As[T](value)
	if !ok {
		return ret, member, false
	}
	return actual, member, true
}

//SetBoundValue resolves the mapped member and assigns value to it
func (m *Map) SetBoundValue(value interface{}) error {
	if m == nil || m.Target == nil || m.Path == "" || m.SourceKey == "" {
		return errNotResolved(m)
	}
	member := resolveMember(reflect.TypeOf(m.Target), m.Path)
	if member == nil {
		return errNotResolved(m)
	}
	return SetValue(member, m.Target, value)
}
