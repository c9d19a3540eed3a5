package module

import (
	"strings"
	"sync"

	"github.com/viant/typely/shared/logging"
)

type (
	//Scope owns the ordered list of in scope modules; the list is computed
	//once and reused until Rebuild is called. Modules flagged editor only
	//or dynamic are excluded, as are modules whose name contains any host
	//designated exclusion marker.
	Scope struct {
		provider   Provider
		exclusions []string
		logger     logging.Logger

		mux     sync.Mutex
		built   bool
		modules []*Module
	}

	//ScopeOption customizes a scope
	ScopeOption func(s *Scope)
)

//WithExclusions designates module name markers to exclude from scope
func WithExclusions(markers ...string) ScopeOption {
	return func(s *Scope) {
		s.exclusions = append(s.exclusions, markers...)
	}
}

//WithLogger overrides the scope diagnostics logger
func WithLogger(logger logging.Logger) ScopeOption {
	return func(s *Scope) {
		s.logger = logger
	}
}

//NewScope creates a module scope over the supplied provider
func NewScope(provider Provider, opts ...ScopeOption) *Scope {
	ret := &Scope{provider: provider}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = logging.Default()
	}
	return ret
}

//Modules returns the in scope modules; the result is computed once and
//cached. A failing provider yields an empty scope with a warning, never
//an error.
func (s *Scope) Modules() []*Module {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.built {
		return s.modules
	}
	s.built = true
	s.modules = s.build()
	return s.modules
}

//Rebuild discards the cached module list; the next Modules call
//re-enumerates the provider
func (s *Scope) Rebuild() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.built = false
	s.modules = nil
}

//Logger returns the scope diagnostics logger
func (s *Scope) Logger() logging.Logger {
	return s.logger
}

func (s *Scope) build() []*Module {
	if s.provider == nil {
		return nil
	}
	modules, err := s.provider.Modules()
	if err != nil {
		s.logger.Warn("failed to enumerate modules", "error", err.Error())
		return nil
	}
	var ret []*Module
	for _, candidate := range modules {
		if candidate == nil || s.isExcluded(candidate) {
			continue
		}
		ret = append(ret, candidate)
	}
	return ret
}

func (s *Scope) isExcluded(candidate *Module) bool {
	if candidate.IsEditorOnly() || candidate.IsDynamic() {
		return true
	}
	for _, marker := range s.exclusions {
		if marker == "" {
			continue
		}
		if strings.Contains(candidate.Name(), marker) {
			return true
		}
	}
	return false
}
