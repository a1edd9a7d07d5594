// Package sample synthesizes example request bodies from validation rules.
package sample

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"route-postman/internal/model"
)

// Fixed sample values
const (
	SampleEmail    = "user@user.com"
	SamplePassword = "password"
	SampleText     = "sample_text"
)

// ModelResolver looks up the writable fields of the data model behind a handler.
// It is implemented by the host application; ok is false when no model exists.
type ModelResolver interface {
	ResolveModelFields(controller string) (fields []string, ok bool)
}

// Settings holds the body-related configuration
type Settings struct {
	DefaultBodyType string         // raw | formdata
	DefaultValues   map[string]any // Overrides keyed by exact field path
}

// Synthesizer builds sample bodies for requests
type Synthesizer struct {
	settings Settings
	models   ModelResolver
	rng      source
	now      func() time.Time
}

// source is the subset of *rand.Rand used for sample values
type source interface {
	Uint64() uint64
	Uint64N(n uint64) uint64
}

type globalSource struct{}

func (globalSource) Uint64() uint64          { return rand.Uint64() }
func (globalSource) Uint64N(n uint64) uint64 { return rand.Uint64N(n) }

// Option customizes a Synthesizer
type Option func(*Synthesizer)

// WithModelResolver sets the model-field fallback used when a route has no validator
func WithModelResolver(r ModelResolver) Option {
	return func(s *Synthesizer) { s.models = r }
}

// WithClock replaces time.Now for date samples
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) { s.now = now }
}

// WithRand replaces the process-local random source
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) { s.rng = r }
}

// New creates a Synthesizer
func New(settings Settings, opts ...Option) *Synthesizer {
	if settings.DefaultValues == nil {
		settings.DefaultValues = make(map[string]any)
	}
	s := &Synthesizer{
		settings: settings,
		rng:      globalSource{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Value infers the sample value of one field. First match wins:
// configured override, email, password, array, integer, numeric, boolean,
// date_format, then a generic text.
func (s *Synthesizer) Value(field string, rules []string) any {
	if v, ok := s.settings.DefaultValues[field]; ok {
		return v
	}

	switch {
	case hasRule(rules, "email"):
		return SampleEmail
	case hasRule(rules, "password"):
		return SamplePassword
	case hasRule(rules, "array"):
		return NewList()
	case hasRule(rules, "integer"):
		return s.randomInt(rules, 0, 10)
	case hasRule(rules, "numeric"):
		return s.randomInt(rules, 1, 100)
	case hasRule(rules, "boolean"):
		return int(s.rng.Uint64N(2))
	}

	if format, ok := ruleParam(rules, "date_format"); ok {
		return FormatDate(s.now(), format)
	}

	return SampleText
}

// Document assembles the nested sample document for a rule set
func (s *Synthesizer) Document(rules []model.FieldRule) *Object {
	doc := NewObject()
	for _, fr := range rules {
		if strings.TrimSpace(fr.Field) == "" {
			continue
		}
		Assign(doc, fr.Field, s.Value(fr.Field, fr.Rules))
	}
	return doc
}

// FromRules builds the request body for a route with a validator
func (s *Synthesizer) FromRules(rules []model.FieldRule, method string) (*model.Body, error) {
	return s.encode(s.Document(rules), s.Mode(method))
}

// FromModel builds the request body from the model behind controller.
// Every writable field gets an empty string; without a model the body is empty.
func (s *Synthesizer) FromModel(controller, method string) (*model.Body, error) {
	doc := NewObject()
	if s.models != nil {
		if fields, ok := s.models.ResolveModelFields(controller); ok {
			for _, f := range fields {
				doc.Set(f, "")
			}
		}
	}
	return s.encode(doc, s.Mode(method))
}

// Mode picks the body encoding: form-data only for POST with formdata configured
func (s *Synthesizer) Mode(method string) string {
	if strings.EqualFold(method, "POST") && s.settings.DefaultBodyType == model.BodyModeFormData {
		return model.BodyModeFormData
	}
	return model.BodyModeRaw
}

func (s *Synthesizer) encode(doc *Object, mode string) (*model.Body, error) {
	if mode == model.BodyModeFormData {
		return &model.Body{
			Mode:     model.BodyModeFormData,
			FormData: Flatten(doc),
		}, nil
	}

	raw, err := EncodeRaw(doc)
	if err != nil {
		return nil, err
	}
	return &model.Body{
		Mode:    model.BodyModeRaw,
		Raw:     raw,
		Options: &model.BodyOptions{Raw: &model.RawOptions{Language: "json"}},
	}, nil
}

// EncodeRaw renders doc as indented JSON without HTML or slash escaping
func EncodeRaw(doc *Object) (string, error) {
	b, err := marshalNoEscape(doc)
	if err != nil {
		return "", err
	}
	return indent(b)
}

func (s *Synthesizer) randomInt(rules []string, lo, hi int) int {
	if v, ok := ruleParam(rules, "min"); ok {
		if n, ok := parseBound(v); ok {
			lo = n
		}
	}
	if v, ok := ruleParam(rules, "max"); ok {
		if n, ok := parseBound(v); ok {
			hi = n
		}
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	// hi-lo fits in uint64 for any pair of ints
	span := uint64(hi) - uint64(lo)
	if span == math.MaxUint64 {
		return int(s.rng.Uint64())
	}
	return lo + int(s.rng.Uint64N(span+1))
}

func parseBound(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	// Out-of-range bounds saturate
	switch {
	case f >= math.MaxInt:
		return math.MaxInt, true
	case f <= math.MinInt:
		return math.MinInt, true
	}
	return int(f), true
}

// ruleName returns the token name without its parameter ("min:3" -> "min")
func ruleName(token string) string {
	if idx := strings.Index(token, ":"); idx >= 0 {
		return token[:idx]
	}
	return token
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if ruleName(r) == name {
			return true
		}
	}
	return false
}

func ruleParam(rules []string, name string) (string, bool) {
	prefix := name + ":"
	for _, r := range rules {
		if strings.HasPrefix(r, prefix) {
			return r[len(prefix):], true
		}
	}
	return "", false
}
