//Package discovery enumerates types across in scope modules and filters
//them by subclass, raw generic family, assignability, interface and
//attribute relationships. Discovery results are never cached; every call
//re-scans the in scope modules.
package discovery

import (
	"sort"
	"unicode"

	"github.com/viant/typely/module"
	"github.com/viant/typely/resolver"
	"github.com/viant/typely/shared/logging"
)

type (
	//Service discovers types across the resolver's module scope
	Service struct {
		resolver *resolver.Service
		logger   logging.Logger
	}

	//MatchOption adjusts derived type matching
	MatchOption func(m *matcher)

	matcher struct {
		includeAssignable bool
		includeAbstract   bool
		includeInterface  bool
	}
)

//WithAssignable also matches types generally assignable to the base
func WithAssignable() MatchOption {
	return func(m *matcher) {
		m.includeAssignable = true
	}
}

//WithAbstract keeps abstract types in the result
func WithAbstract() MatchOption {
	return func(m *matcher) {
		m.includeAbstract = true
	}
}

//WithInterfaces keeps interface types in the result
func WithInterfaces() MatchOption {
	return func(m *matcher) {
		m.includeInterface = true
	}
}

//New creates a discovery service
func New(resolverSrv *resolver.Service, logger logging.Logger) *Service {
	if logger == nil {
		logger = resolverSrv.Scope().Logger()
	}
	return &Service{resolver: resolverSrv, logger: logger}
}

//FindDerivedTypes returns exported types across in scope modules deriving
//from base: true subclasses, members of base's raw generic family, and,
//when opted in, types generally assignable to base. Abstract and
//interface filters apply uniformly to all match kinds. The result is
//sorted by canonical type name.
func (s *Service) FindDerivedTypes(base *module.Definition, opts ...MatchOption) []*module.Definition {
	if base == nil {
		return nil
	}
	match := &matcher{}
	for _, opt := range opts {
		opt(match)
	}
	var ret []*module.Definition
	s.scan(nil, func(def *module.Definition) {
		if def == base || !isExported(def.Name()) || def.IsGenericFamily() {
			return
		}
		if !match.includeAbstract && def.IsAbstract() {
			return
		}
		if !match.includeInterface && def.IsInterface() {
			return
		}
		if s.matches(def, base, match) {
			ret = append(ret, def)
		}
	})
	sortByTypeName(ret)
	return ret
}

func (s *Service) matches(def, base *module.Definition, match *matcher) bool {
	if base.Type() != nil && s.resolver.IsSubclassOf(def.Type(), base.Type()) {
		return true
	}
	if s.resolver.SharesRawGenericFamily(def.Type(), base.RawTypeName()) {
		return true
	}
	if match.includeAssignable && base.Type() != nil && def.Type() != base.Type() {
		if def.Type().AssignableTo(base.Type()) {
			return true
		}
	}
	return false
}

//FindSubclasses returns strict subclasses of base, excluding interfaces
//and base itself; when modules are supplied the scan is restricted to
//them instead of the full scope
func (s *Service) FindSubclasses(base *module.Definition, modules ...*module.Module) []*module.Definition {
	if base == nil || base.Type() == nil {
		return nil
	}
	var ret []*module.Definition
	s.scan(modules, func(def *module.Definition) {
		if def == base || def.IsInterface() || def.IsGenericFamily() {
			return
		}
		if s.resolver.IsSubclassOf(def.Type(), base.Type()) {
			ret = append(ret, def)
		}
	})
	sortByTypeName(ret)
	return ret
}

//scan visits every definition of every candidate module; a module whose
//definitions cannot be enumerated is skipped with a warning, the only
//recovered failure category
func (s *Service) scan(modules []*module.Module, visit func(def *module.Definition)) {
	if len(modules) == 0 {
		modules = s.resolver.Scope().Modules()
	}
	for _, candidate := range modules {
		s.scanModule(candidate, visit)
	}
}

func (s *Service) scanModule(candidate *module.Module, visit func(def *module.Definition)) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("module scan failed", "module", candidate.Name(), "error", r)
		}
	}()
	defs, err := candidate.Definitions()
	if err != nil {
		s.logger.Warn("failed to load module types", "module", candidate.Name(), "error", err.Error())
		return
	}
	for _, def := range defs {
		visit(def)
	}
}

func sortByTypeName(defs []*module.Definition) {
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].TypeName() < defs[j].TypeName()
	})
}

func isExported(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}
