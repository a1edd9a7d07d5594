package collection

import (
	"route-postman/internal/config"
	"route-postman/internal/model"
)

// HeaderBuilder assembles request headers
type HeaderBuilder struct {
	defaults []config.HeaderEntry
	auth     config.AuthConfig
	policy   *AuthPolicy
}

// NewHeaderBuilder creates a HeaderBuilder
func NewHeaderBuilder(headers []config.HeaderEntry, auth config.AuthConfig, policy *AuthPolicy) *HeaderBuilder {
	return &HeaderBuilder{defaults: headers, auth: auth, policy: policy}
}

// Build returns the configured default headers, plus the API key header for
// protected routes when the key travels in a header
func (b *HeaderBuilder) Build(route *model.RouteDescriptor) []model.Header {
	headers := b.Defaults()

	if b.auth.Type == config.AuthAPIKey && b.policy.location() == "header" && b.policy.IsProtected(route) {
		headers = append(headers, model.Header{
			Key:   b.policy.keyName(),
			Value: "{{api_key}}",
			Type:  "text",
		})
	}
	return headers
}

// Defaults returns the configured headers in order
func (b *HeaderBuilder) Defaults() []model.Header {
	headers := make([]model.Header, 0, len(b.defaults)+1)
	for _, h := range b.defaults {
		headers = append(headers, model.Header{Key: h.Key, Value: h.Value, Type: "text"})
	}
	return headers
}
