// Package collection turns route descriptors into a Postman collection.
package collection

import (
	"strings"

	"route-postman/internal/config"
	"route-postman/internal/model"
	"route-postman/internal/utils"
)

// Middleware every API route carries through its group; it says nothing about auth
const implicitGroupMiddleware = "api"

// Scheme describes the active auth scheme and the variables it needs
type Scheme struct {
	Type   string   // Postman auth type (bearer, basic, apikey)
	Fields []string // Collection variables holding the credentials
}

// AuthPolicy decides which routes get authentication and how
type AuthPolicy struct {
	cfg    config.AuthConfig
	prefix string
}

// NewAuthPolicy creates an AuthPolicy
func NewAuthPolicy(cfg config.AuthConfig, routePrefix string) *AuthPolicy {
	return &AuthPolicy{
		cfg:    cfg,
		prefix: strings.Trim(routePrefix, "/"),
	}
}

// Enabled reports whether auth is configured at all
func (p *AuthPolicy) Enabled() bool {
	return p.cfg.Enabled
}

func (p *AuthPolicy) keyName() string {
	if p.cfg.Default.KeyName != "" {
		return p.cfg.Default.KeyName
	}
	return "X-API-KEY"
}

func (p *AuthPolicy) location() string {
	if p.cfg.Location != "" {
		return p.cfg.Location
	}
	return "header"
}

// Scheme returns the auth type and credential variables for the configured type.
// An unknown type yields an empty Scheme.
func (p *AuthPolicy) Scheme() Scheme {
	switch p.cfg.Type {
	case config.AuthBearer:
		return Scheme{Type: model.AuthTypeBearer, Fields: []string{"token"}}
	case config.AuthBasic:
		return Scheme{Type: model.AuthTypeBasic, Fields: []string{"auth_username", "auth_password"}}
	case config.AuthAPIKey:
		fields := []string{"api_key"}
		if p.cfg.Default.KeyName != "" {
			fields = append(fields, "api_key_name")
		}
		return Scheme{Type: model.AuthTypeAPIKey, Fields: fields}
	}
	return Scheme{}
}

// CollectionAuth returns the collection-level auth block, nil for unknown types
func (p *AuthPolicy) CollectionAuth() *model.Auth {
	return p.block("string")
}

// RequestAuth returns the request-level auth block, nil for unknown types
func (p *AuthPolicy) RequestAuth() *model.Auth {
	return p.block("")
}

func (p *AuthPolicy) block(paramType string) *model.Auth {
	param := func(key, value string) model.AuthParam {
		return model.AuthParam{Key: key, Value: value, Type: paramType}
	}

	switch p.cfg.Type {
	case config.AuthBearer:
		return &model.Auth{
			Type:   model.AuthTypeBearer,
			Bearer: []model.AuthParam{param("token", "{{token}}")},
		}
	case config.AuthBasic:
		return &model.Auth{
			Type: model.AuthTypeBasic,
			Basic: []model.AuthParam{
				param("username", "{{auth_username}}"),
				param("password", "{{auth_password}}"),
			},
		}
	case config.AuthAPIKey:
		return &model.Auth{
			Type: model.AuthTypeAPIKey,
			APIKey: []model.AuthParam{
				param("key", p.keyName()),
				param("value", "{{api_key}}"),
				param("in", p.location()),
			},
		}
	}
	return nil
}

// Variables returns one collection variable per credential field, seeded from
// the configured defaults
func (p *AuthPolicy) Variables() []model.Variable {
	d := p.cfg.Default
	variable := func(key, value, description string) model.Variable {
		return model.Variable{Key: key, Value: value, Type: "string", Description: description}
	}

	switch p.cfg.Type {
	case config.AuthBearer:
		return []model.Variable{
			variable("token", d.Token, "Bearer token for API authentication"),
		}
	case config.AuthBasic:
		return []model.Variable{
			variable("auth_username", d.Username, "Basic Auth username"),
			variable("auth_password", d.Password, "Basic Auth password"),
		}
	case config.AuthAPIKey:
		vars := []model.Variable{
			variable("api_key", d.KeyValue, "API Key for authentication"),
		}
		if d.KeyName != "" {
			vars = append(vars, variable("api_key_name", d.KeyName, "API Key header name"))
		}
		return vars
	}
	return nil
}

// IsRouteExcluded reports whether uri is a login-style endpoint. The prefix is
// stripped and the rest is matched by substring, so "auth/login" and "login"
// both hit the "login" token.
func (p *AuthPolicy) IsRouteExcluded(uri string) bool {
	path := strings.Trim(uri, "/")
	if p.prefix != "" && (path == p.prefix || strings.HasPrefix(path, p.prefix+"/")) {
		path = path[len(p.prefix):]
	}
	path = strings.ToLower(strings.Trim(path, "/"))

	for _, token := range p.cfg.ExcludedRoutes {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" && strings.Contains(path, token) {
			return true
		}
	}
	return false
}

// ShouldAttachAuth reports whether a request gets its own auth block: auth is
// enabled, the route is not excluded, and it carries middleware beyond the
// implicit "api" group.
func (p *AuthPolicy) ShouldAttachAuth(route *model.RouteDescriptor) bool {
	if !p.cfg.Enabled {
		return false
	}
	if p.IsRouteExcluded(route.URI) {
		return false
	}
	return len(meaningfulMiddleware(route.Middleware)) > 0
}

// IsProtected reports whether the route sits behind a protected middleware
func (p *AuthPolicy) IsProtected(route *model.RouteDescriptor) bool {
	return route.IsProtected || utils.Intersects(p.cfg.ProtectedMiddleware, route.Middleware)
}

func meaningfulMiddleware(middleware []string) []string {
	result := make([]string, 0, len(middleware))
	for _, m := range middleware {
		m = strings.TrimSpace(m)
		if m == "" || m == implicitGroupMiddleware {
			continue
		}
		result = append(result, m)
	}
	return result
}
