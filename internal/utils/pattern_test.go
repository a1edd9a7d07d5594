package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern  string
		value    string
		expected bool
	}{
		{"api/users", "api/users", true},
		{"api/users/*", "api/users/{id}", true},
		{"api/users/*", "api/users/{id}/posts", true},
		{"api/users/*", "api/users", false},
		{"*login", "api/auth/login", true},
		{"api/*/admin", "api/v1/admin", true},
		{"api/*/admin", "api/v1/admin/x", false},
		{"api/v1.0/*", "api/v1x0/ping", false},
		{"*", "anything/at/all", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MatchGlob(tt.pattern, tt.value), "MatchGlob(%q, %q)", tt.pattern, tt.value)
	}
}

func TestMatchAnyGlob(t *testing.T) {
	assert.True(t, MatchAnyGlob([]string{"api/admin/*", "api/internal/*"}, "api/internal/health"))
	assert.False(t, MatchAnyGlob([]string{"api/admin/*"}, "api/users"))
	assert.False(t, MatchAnyGlob(nil, "api/users"))
}

func TestIntersects(t *testing.T) {
	assert.True(t, Intersects([]string{"api", "auth:sanctum"}, []string{"auth", "auth:sanctum"}))
	assert.False(t, Intersects([]string{"api", "throttle"}, []string{"auth"}))
	assert.False(t, Intersects(nil, []string{"auth"}))
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		`App\Http\Controllers\UserController`: "UserController",
		"internal/handlers.OrderController":   "OrderController",
		"PostController":                      "PostController",
		"":                                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, BaseName(in), "BaseName(%q)", in)
	}
}
