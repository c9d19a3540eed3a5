package binding

import "github.com/pkg/errors"

func errNotResolved(m *Map) error {
	if m == nil {
		return errors.New("binding map was nil")
	}
	return errors.Errorf("failed to resolve binding: sourceKey: %v, path: %v", m.SourceKey, m.Path)
}
