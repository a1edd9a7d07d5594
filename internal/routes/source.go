package routes

import (
	"fmt"
	"strings"

	"route-postman/internal/config"
	"route-postman/internal/logger"
	"route-postman/internal/model"
	"route-postman/internal/utils"
)

// Filter applies the include/exclude criteria of the routes configuration
type Filter struct {
	prefix  string
	include config.RouteFilter
	exclude config.RouteFilter
}

// NewFilter creates a Filter from the routes configuration
func NewFilter(cfg config.RoutesConfig) *Filter {
	return &Filter{
		prefix:  strings.Trim(cfg.Prefix, "/"),
		include: cfg.Include,
		exclude: cfg.Exclude,
	}
}

// Match reports whether the route passes every criterion
func (f *Filter) Match(e *RouteEntry) bool {
	uri := strings.TrimPrefix(e.URI, "/")
	if f.prefix != "" && !strings.HasPrefix(uri, f.prefix) {
		return false
	}

	if len(f.include.Patterns) > 0 && !utils.MatchAnyGlob(f.include.Patterns, uri) {
		return false
	}
	if utils.MatchAnyGlob(f.exclude.Patterns, uri) {
		return false
	}

	gathered := e.gathered()
	if len(f.include.Middleware) > 0 && !utils.Intersects(f.include.Middleware, gathered) {
		return false
	}
	if utils.Intersects(f.exclude.Middleware, gathered) {
		return false
	}

	if e.Controller != "" {
		if len(f.include.Controllers) > 0 && !utils.Contains(f.include.Controllers, e.Controller) {
			return false
		}
		if utils.Contains(f.exclude.Controllers, e.Controller) {
			return false
		}
	}
	return true
}

// gathered returns the full middleware stack, falling back to the route-specific list
func (e *RouteEntry) gathered() []string {
	if len(e.GatheredMiddleware) > 0 {
		return e.GatheredMiddleware
	}
	return e.Middleware
}

// Extract filters the manifest and converts the surviving entries into
// descriptors, in manifest order. Unsupported routes are passed through; the
// grouper decides what to skip.
func Extract(m *Manifest, cfg *config.Config) []model.RouteDescriptor {
	filter := NewFilter(cfg.Routes)

	result := make([]model.RouteDescriptor, 0, len(m.Routes))
	for i := range m.Routes {
		entry := &m.Routes[i]
		if !filter.Match(entry) {
			logger.Debug("Filtered out route %s", entry.URI)
			continue
		}
		result = append(result, entry.descriptor(cfg.Auth.ProtectedMiddleware))
	}

	logger.Debug("Extracted %d of %d routes", len(result), len(m.Routes))
	return result
}

// Load reads the manifest at path and extracts the routes selected by cfg
func Load(path string, cfg *config.Config) ([]model.RouteDescriptor, ModelTable, error) {
	m, err := ReadManifest(path)
	if err != nil {
		return nil, nil, err
	}
	if len(m.Routes) == 0 {
		return nil, nil, fmt.Errorf("no routes found in %s", path)
	}
	return Extract(m, cfg), m.Models, nil
}

func (e *RouteEntry) descriptor(protected []string) model.RouteDescriptor {
	methods := make([]string, 0, len(e.Methods))
	for _, method := range e.Methods {
		if method = strings.ToUpper(strings.TrimSpace(method)); method != "" {
			methods = append(methods, method)
		}
	}

	d := model.RouteDescriptor{
		URI:         strings.TrimPrefix(e.URI, "/"),
		Methods:     methods,
		Controller:  e.Controller,
		Action:      e.Action,
		Closure:     e.Closure,
		Middleware:  append([]string(nil), e.Middleware...),
		IsProtected: utils.Intersects(protected, e.gathered()),
	}

	if e.Validator != nil {
		d.Validator = e.validator()
	}
	return d
}

// validator converts the validator entry. A validator that failed on the host
// side or carries unreadable rules is kept with an empty rule set.
func (e *RouteEntry) validator() *model.Validator {
	v := &model.Validator{Name: e.Validator.Name, Rules: make([]model.FieldRule, 0)}

	if e.Validator.Error != "" {
		logger.Warn("Validator %s for %s could not be built: %s", v.Name, e.URI, e.Validator.Error)
		return v
	}

	rules, err := e.Validator.FieldRules()
	if err != nil {
		logger.Warn("Validator %s for %s has unreadable rules: %v", v.Name, e.URI, err)
		return v
	}
	if rules != nil {
		v.Rules = rules
	}
	return v
}
