package collection

import (
	"route-postman/internal/config"
	"route-postman/internal/logger"
	"route-postman/internal/model"
	"route-postman/internal/sample"
)

// Builder assembles the collection document
type Builder struct {
	cfg     *config.Config
	policy  *AuthPolicy
	grouper *Grouper
}

// NewBuilder wires the collection components from the configuration.
// models may be nil when no model table is available.
func NewBuilder(cfg *config.Config, models sample.ModelResolver, opts ...sample.Option) *Builder {
	policy := NewAuthPolicy(cfg.Auth, cfg.Routes.Prefix)
	headers := NewHeaderBuilder(cfg.Headers, cfg.Auth, policy)

	if models != nil {
		opts = append([]sample.Option{sample.WithModelResolver(models)}, opts...)
	}
	bodies := sample.New(sample.Settings{
		DefaultBodyType: cfg.RequestBody.DefaultBodyType,
		DefaultValues:   cfg.DefaultValueMap(),
	}, opts...)

	return &Builder{
		cfg:     cfg,
		policy:  policy,
		grouper: NewGrouper(cfg, policy, headers, bodies),
	}
}

// Build produces the collection for routes
func (b *Builder) Build(routes []model.RouteDescriptor) *model.Collection {
	doc := &model.Collection{
		Info: model.Info{
			Name:        b.cfg.Name,
			Description: b.cfg.Description,
			Schema:      model.SchemaV21,
		},
		Item: b.grouper.Group(routes),
		Variable: []model.Variable{
			{Key: "base_url", Value: b.cfg.BaseURL},
		},
	}

	if b.policy.Enabled() {
		doc.Auth = b.policy.CollectionAuth()
		doc.Variable = append(doc.Variable, b.policy.Variables()...)
	}

	logger.Debug("Built collection %q: %d requests from %d routes (strategy %s)",
		doc.Info.Name, doc.CountRequests(), len(routes), b.grouper.Strategy())
	return doc
}
