package model

import (
	"fmt"
	"strings"
)

// HTTP methods that carry a request body
var mutatingMethods = map[string]bool{
	"POST":  true,
	"PUT":   true,
	"PATCH": true,
}

// FieldRule binds a (dot / "*" segmented) field path to its ordered rule tokens.
// Parameterized tokens use the "name:value" form (e.g. "min:3").
type FieldRule struct {
	Field string
	Rules []string
}

// Validator is the input validator attached to a route
type Validator struct {
	Name  string      // Validator class name (e.g. "StoreUserRequest")
	Rules []FieldRule // Ordered field rules; empty when the rule set could not be read
}

// RouteDescriptor is one extracted route fact handed to the collection builder
type RouteDescriptor struct {
	URI        string   // Path template without leading slash (e.g. "api/users/{id}")
	Methods    []string // HTTP methods, first entry is canonical
	Controller string   // Owning handler type (e.g. "App\Http\Controllers\UserController")
	Action     string   // Handler method name
	Closure    bool     // Handler is an anonymous function

	Validator  *Validator // nil when the route has no validator
	Middleware []string   // Route-specific middleware only

	IsProtected bool // Precomputed from the gathered middleware stack
}

// Method returns the canonical HTTP method
func (r *RouteDescriptor) Method() string {
	if len(r.Methods) == 0 {
		return ""
	}
	return strings.ToUpper(r.Methods[0])
}

// IsMutating reports whether the canonical method usually carries a body
func (r *RouteDescriptor) IsMutating() bool {
	return mutatingMethods[r.Method()]
}

// HasValidator reports whether a validator is attached
func (r *RouteDescriptor) HasValidator() bool {
	return r.Validator != nil
}

// Unsupported returns a non-empty reason when the route cannot be represented
// in a collection (no method, or no resolvable handler).
func (r *RouteDescriptor) Unsupported() string {
	if len(r.Methods) == 0 {
		return "no HTTP method"
	}
	if r.Closure {
		return ""
	}
	if strings.TrimSpace(r.Controller) == "" {
		return "missing handler"
	}
	if strings.TrimSpace(r.Action) == "" {
		return "missing handler method"
	}
	return ""
}

// String returns a human-readable representation of the route
func (r *RouteDescriptor) String() string {
	return fmt.Sprintf("[%s] %s", strings.Join(r.Methods, "|"), r.URI)
}
