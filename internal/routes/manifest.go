// Package routes reads the route manifest dumped by the host application and
// turns it into route descriptors.
package routes

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"route-postman/internal/model"
	"route-postman/internal/utils"
)

// Manifest is the decoded routes file. JSON manifests decode through the same path.
type Manifest struct {
	Routes []RouteEntry `yaml:"routes"`
	Models ModelTable   `yaml:"models"`
}

// RouteEntry is one route as written by the dumper
type RouteEntry struct {
	URI                string          `yaml:"uri"`
	Methods            []string        `yaml:"methods"`
	Controller         string          `yaml:"controller"`
	Action             string          `yaml:"action"`
	Closure            bool            `yaml:"closure"`
	Middleware         []string        `yaml:"middleware"`          // Route-specific only
	GatheredMiddleware []string        `yaml:"gathered_middleware"` // Full stack including groups
	Validator          *ValidatorEntry `yaml:"validator"`
}

// ValidatorEntry describes the validator bound to a route.
// Error is filled by the dumper when the validator could not be instantiated.
type ValidatorEntry struct {
	Name  string    `yaml:"name"`
	Error string    `yaml:"error"`
	Rules yaml.Node `yaml:"rules"`
}

// ModelTable maps a handler type to the writable fields of its model
type ModelTable map[string][]string

// ResolveModelFields looks the handler up by its full name, then by base name
func (t ModelTable) ResolveModelFields(controller string) ([]string, bool) {
	if controller == "" || len(t) == 0 {
		return nil, false
	}
	if fields, ok := t[controller]; ok {
		return fields, true
	}

	base := utils.BaseName(controller)
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if utils.BaseName(key) == base {
			return t[key], true
		}
	}
	return nil, false
}

// ReadManifest reads and parses a manifest file.
// Files that are not valid UTF-8 are decoded as EUC-KR first.
func ReadManifest(path string) (*Manifest, error) {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file: %w", err)
	}

	data, err := toUTF8(rawBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode routes file %s: %w", path, err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse routes file %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes manifest bytes (YAML or JSON)
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Models == nil {
		m.Models = make(ModelTable)
	}
	return &m, nil
}

func toUTF8(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}

	decoder := korean.EUCKR.NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// FieldRules normalizes the rules mapping into ordered field rules.
// Each field accepts a list of tokens or a "|" delimited string.
func (v *ValidatorEntry) FieldRules() ([]model.FieldRule, error) {
	node := &v.Rules
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return nil, fmt.Errorf("rules must be a mapping, got scalar %q", node.Value)
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("rules must be a mapping (line %d)", node.Line)
	}

	result := make([]model.FieldRule, 0, len(node.Content)/2)
	// Content alternates key, value
	for i := 0; i+1 < len(node.Content); i += 2 {
		field := strings.TrimSpace(node.Content[i].Value)
		if field == "" {
			continue
		}
		result = append(result, model.FieldRule{
			Field: field,
			Rules: ruleTokens(node.Content[i+1]),
		})
	}
	return result, nil
}

// ruleTokens flattens a rule value into trimmed tokens. Non-scalar entries
// (serialized rule objects) are ignored.
func ruleTokens(node *yaml.Node) []string {
	tokens := make([]string, 0)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return tokens
		}
		for _, t := range strings.Split(node.Value, "|") {
			if t = strings.TrimSpace(t); t != "" {
				tokens = append(tokens, t)
			}
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
				continue
			}
			if t := strings.TrimSpace(item.Value); t != "" {
				tokens = append(tokens, t)
			}
		}
	}
	return tokens
}
