package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"route-postman/internal/config"
	"route-postman/internal/exporter/common"
	"route-postman/internal/logger"
	"route-postman/internal/model"
)

// Security scheme names registered under components
const (
	BearerScheme = "bearerAuth"
	BasicScheme  = "basicAuth"
	APIKeyScheme = "apiKeyAuth"
)

var (
	// Laravel optional parameters carry a trailing "?"
	pathParamPattern = regexp.MustCompile(`^\{([^{}?]+)\??\}$`)
	operationIDClean = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// OpenAPIExporter renders the collection as an OpenAPI 3 document
type OpenAPIExporter struct {
	// Stateless
}

func NewOpenAPIExporter() *OpenAPIExporter {
	return &OpenAPIExporter{}
}

func (b *OpenAPIExporter) Name() string {
	return "openapi"
}

func (b *OpenAPIExporter) Export(doc *model.Collection, cfg *config.Config) (string, error) {
	oas := b.Build(doc, cfg.BaseURL)

	data, err := json.MarshalIndent(oas, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}

	outputFile := cfg.GetOutputPath("openapi.json")
	if err := common.WriteFileAtomic(outputFile, data); err != nil {
		return "", err
	}
	return outputFile, nil
}

// Build converts the collection into an OpenAPI document. Requests sharing a
// path and method keep the first occurrence.
func (b *OpenAPIExporter) Build(doc *model.Collection, serverURL string) *openapi3.T {
	oas := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       doc.Info.Name,
			Description: doc.Info.Description,
			Version:     "1.0.0",
		},
		Paths: openapi3.NewPaths(),
	}
	if serverURL != "" {
		oas.Servers = openapi3.Servers{{URL: serverURL}}
	}

	if name, scheme := securityScheme(doc.Auth); scheme != nil {
		oas.Components = &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				name: &openapi3.SecuritySchemeRef{Value: scheme},
			},
		}
		oas.Security = openapi3.SecurityRequirements{
			openapi3.NewSecurityRequirement().Authenticate(name),
		}
	}

	seen := make(map[string]bool)
	for _, row := range common.FlattenCollection(doc) {
		req := row.Item.Request
		method := strings.ToUpper(req.Method)
		if !supportedMethod(method) {
			logger.Warn("OpenAPI export skips %s %s: unsupported method", req.Method, req.URL.Raw)
			continue
		}

		path, params := b.buildPath(req.URL.Path)
		key := method + " " + path
		if seen[key] {
			continue
		}
		seen[key] = true

		op := &openapi3.Operation{
			Summary:     row.Item.Name,
			OperationID: operationID(method, path),
			Responses: openapi3.NewResponses(
				openapi3.WithName("200", openapi3.NewResponse().WithDescription("Successful response")),
			),
		}
		if tag := row.TopFolder(); tag != "" {
			op.Tags = []string{tag}
		}
		for _, p := range params {
			op.AddParameter(openapi3.NewPathParameter(p).WithSchema(openapi3.NewStringSchema()))
		}
		if req.Body != nil {
			op.RequestBody = b.buildRequestBody(req.Body)
		}
		if req.Auth != nil {
			op.Security = operationSecurity(req.Auth)
		}

		oas.AddOperation(path, method, op)
	}

	return oas
}

// buildPath joins URL path segments into an OpenAPI path and lists its parameters
func (b *OpenAPIExporter) buildPath(segments []string) (string, []string) {
	parts := make([]string, 0, len(segments))
	var params []string
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if m := pathParamPattern.FindStringSubmatch(seg); m != nil {
			params = append(params, m[1])
			seg = "{" + m[1] + "}"
		}
		parts = append(parts, seg)
	}
	return "/" + strings.Join(parts, "/"), params
}

func (b *OpenAPIExporter) buildRequestBody(body *model.Body) *openapi3.RequestBodyRef {
	if body.Mode == model.BodyModeFormData {
		schema := openapi3.NewObjectSchema()
		example := make(map[string]any, len(body.FormData))
		for _, p := range body.FormData {
			schema.WithProperty(p.Key, schemaFor(p.Value))
			example[p.Key] = p.Value
		}
		return &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{
				Content: openapi3.Content{
					"multipart/form-data": &openapi3.MediaType{
						Schema:  schema.NewRef(),
						Example: example,
					},
				},
			},
		}
	}

	media := &openapi3.MediaType{Schema: openapi3.NewObjectSchema().NewRef()}
	dec := json.NewDecoder(bytes.NewReader([]byte(body.Raw)))
	dec.UseNumber()
	var sample any
	if err := dec.Decode(&sample); err == nil {
		media.Schema = schemaFor(sample).NewRef()
		media.Example = sample
	} else if strings.TrimSpace(body.Raw) != "" {
		logger.Debug("OpenAPI export keeps a bare schema for a non-JSON body: %v", err)
	}

	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Content: openapi3.Content{"application/json": media},
		},
	}
}

// schemaFor infers a schema from a decoded sample value
func schemaFor(v any) *openapi3.Schema {
	switch val := v.(type) {
	case map[string]any:
		s := openapi3.NewObjectSchema()
		for k, child := range val {
			s.WithProperty(k, schemaFor(child))
		}
		return s
	case []any:
		items := openapi3.NewStringSchema()
		if len(val) > 0 {
			items = schemaFor(val[0])
		}
		return openapi3.NewArraySchema().WithItems(items)
	case bool:
		return openapi3.NewBoolSchema()
	case json.Number:
		if strings.ContainsAny(val.String(), ".eE") {
			return openapi3.NewFloat64Schema()
		}
		return openapi3.NewIntegerSchema()
	case int, int64:
		return openapi3.NewIntegerSchema()
	case float64:
		return openapi3.NewFloat64Schema()
	}
	return openapi3.NewStringSchema()
}

func securityScheme(auth *model.Auth) (string, *openapi3.SecurityScheme) {
	if auth == nil {
		return "", nil
	}
	switch auth.Type {
	case model.AuthTypeBearer:
		return BearerScheme, openapi3.NewSecurityScheme().WithType("http").WithScheme("bearer")
	case model.AuthTypeBasic:
		return BasicScheme, openapi3.NewSecurityScheme().WithType("http").WithScheme("basic")
	case model.AuthTypeAPIKey:
		name, in := "X-API-KEY", "header"
		for _, p := range auth.APIKey {
			switch p.Key {
			case "key":
				name = p.Value
			case "in":
				in = p.Value
			}
		}
		return APIKeyScheme, openapi3.NewSecurityScheme().WithType("apiKey").WithIn(in).WithName(name)
	}
	return "", nil
}

// operationSecurity maps a request-level auth block. noauth clears security.
func operationSecurity(auth *model.Auth) *openapi3.SecurityRequirements {
	if auth.Type == model.AuthTypeNone {
		return openapi3.NewSecurityRequirements()
	}
	name, scheme := securityScheme(auth)
	if scheme == nil {
		return nil
	}
	return openapi3.NewSecurityRequirements().With(openapi3.NewSecurityRequirement().Authenticate(name))
}

func operationID(method, path string) string {
	id := strings.Trim(operationIDClean.ReplaceAllString(path, "_"), "_")
	if id == "" {
		id = "root"
	}
	return strings.ToLower(method) + "_" + id
}

func supportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}
