package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	defer os.Chdir(wd)

	// Load config without a file (should use defaults)
	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config with defaults: %v", err)
	}

	if cfg.Routes.Prefix != "api" {
		t.Errorf("Expected prefix 'api', got %q", cfg.Routes.Prefix)
	}

	if cfg.Collection.GroupingStrategy != StrategyPrefix {
		t.Errorf("Expected grouping strategy %q, got %q", StrategyPrefix, cfg.Collection.GroupingStrategy)
	}

	if cfg.Collection.MaxNestingDepth != 10 {
		t.Errorf("Expected max nesting depth 10, got %d", cfg.Collection.MaxNestingDepth)
	}

	if !cfg.Auth.Enabled || cfg.Auth.Type != AuthBearer {
		t.Errorf("Expected bearer auth enabled, got enabled=%v type=%s", cfg.Auth.Enabled, cfg.Auth.Type)
	}

	if len(cfg.Auth.ProtectedMiddleware) != 3 {
		t.Errorf("Expected 3 protected middleware, got %v", cfg.Auth.ProtectedMiddleware)
	}

	if len(cfg.Headers) != 2 || cfg.Headers[0].Key != "Accept" || cfg.Headers[1].Key != "Content-Type" {
		t.Errorf("Expected Accept and Content-Type headers in order, got %+v", cfg.Headers)
	}

	if cfg.Output.Dir == "" || !filepath.IsAbs(cfg.Output.Dir) {
		t.Errorf("Expected absolute Output.Dir, got %q", cfg.Output.Dir)
	}

	t.Logf("Config loaded successfully with defaults")
	cfg.Print()
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
name: "Shop API"
base_url: "https://shop.example.com"
routes:
  prefix: "/api/"
collection:
  grouping_strategy: nested_path
  max_nesting_depth: 3
request_body:
  default_body_type: formdata
  default_values:
    - field: "user.firstName"
      value: "Jane"
    - field: "age"
      value: 42
auth:
  type: api_key
  default:
    key_name: X-Shop-Key
headers:
  - key: X-Client
    value: postman
output:
  dir: "` + filepath.ToSlash(filepath.Join(tmpDir, "out")) + `"
  formats: [json, yaml]
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Name != "Shop API" {
		t.Errorf("Name = %q, expected %q", cfg.Name, "Shop API")
	}
	if cfg.Routes.Prefix != "api" {
		t.Errorf("Prefix = %q, expected slashes trimmed", cfg.Routes.Prefix)
	}
	if cfg.Collection.GroupingStrategy != StrategyNestedPath || cfg.Collection.MaxNestingDepth != 3 {
		t.Errorf("Collection = %+v", cfg.Collection)
	}
	if cfg.Auth.Type != AuthAPIKey || cfg.Auth.Default.KeyName != "X-Shop-Key" {
		t.Errorf("Auth = %+v", cfg.Auth)
	}

	// Field path case must survive (viper folds map keys, lists keep them)
	values := cfg.DefaultValueMap()
	if values["user.firstName"] != "Jane" {
		t.Errorf("DefaultValueMap()[user.firstName] = %v, expected Jane", values["user.firstName"])
	}
	if values["age"] != 42 {
		t.Errorf("DefaultValueMap()[age] = %v, expected 42", values["age"])
	}

	if len(cfg.Headers) != 1 || cfg.Headers[0].Key != "X-Client" {
		t.Errorf("Headers = %+v, expected the configured list to replace defaults", cfg.Headers)
	}

	if _, err := os.Stat(cfg.Output.Dir); err != nil {
		t.Errorf("Output dir was not created: %v", err)
	}
}

func TestGetOutputPath(t *testing.T) {
	cfg := &Config{
		Output: OutputConfig{
			Dir:      "/tmp/output",
			FileName: "test-collection",
		},
	}

	tests := []struct {
		ext      string
		expected string
	}{
		{"json", filepath.Join("/tmp/output", "test-collection.json")},
		{".yaml", filepath.Join("/tmp/output", "test-collection.yaml")},
		{"xlsx", filepath.Join("/tmp/output", "test-collection.xlsx")},
	}

	for _, tt := range tests {
		result := cfg.GetOutputPath(tt.ext)
		if result != tt.expected {
			t.Errorf("GetOutputPath(%s) = %s, expected %s", tt.ext, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return Default()
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		shouldErr bool
	}{
		{
			name:      "Valid defaults",
			mutate:    func(c *Config) {},
			shouldErr: false,
		},
		{
			name:      "Placeholder base URL",
			mutate:    func(c *Config) { c.BaseURL = "{{host}}" },
			shouldErr: false,
		},
		{
			name:      "Invalid base URL",
			mutate:    func(c *Config) { c.BaseURL = "not a url" },
			shouldErr: true,
		},
		{
			name:      "Unknown grouping strategy",
			mutate:    func(c *Config) { c.Collection.GroupingStrategy = "by_tag" },
			shouldErr: true,
		},
		{
			name:      "Negative nesting depth",
			mutate:    func(c *Config) { c.Collection.MaxNestingDepth = -1 },
			shouldErr: true,
		},
		{
			name:      "Unknown body type",
			mutate:    func(c *Config) { c.RequestBody.DefaultBodyType = "xml" },
			shouldErr: true,
		},
		{
			name:      "Unknown auth type",
			mutate:    func(c *Config) { c.Auth.Type = "oauth2" },
			shouldErr: true,
		},
		{
			name:      "Unknown api key location",
			mutate:    func(c *Config) { c.Auth.Location = "cookie" },
			shouldErr: true,
		},
		{
			name:      "Empty output filename",
			mutate:    func(c *Config) { c.Output.FileName = "" },
			shouldErr: true,
		},
		{
			name:      "Empty header key",
			mutate:    func(c *Config) { c.Headers = append(c.Headers, HeaderEntry{Value: "x"}) },
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.shouldErr && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestDefaultExcludedRoutes(t *testing.T) {
	cfg := Default()

	expected := map[string]bool{
		"login":          true,
		"register":       true,
		"password-reset": true,
	}
	for _, token := range cfg.Auth.ExcludedRoutes {
		delete(expected, token)
	}
	if len(expected) != 0 {
		t.Errorf("Default excluded routes missing %v", expected)
	}
}

func TestDefaultDecodesBuiltIns(t *testing.T) {
	cfg := Default()

	if cfg.Name != "Laravel Routes" || cfg.BaseURL != "http://localhost" {
		t.Errorf("Unexpected collection defaults: name=%q base_url=%q", cfg.Name, cfg.BaseURL)
	}
	if cfg.Collection.GroupingStrategy != StrategyPrefix || cfg.Collection.MaxNestingDepth != 10 {
		t.Errorf("Unexpected collection layout: %+v", cfg.Collection)
	}
	if cfg.RequestBody.DefaultBodyType != BodyRaw || len(cfg.RequestBody.DefaultValues) != 0 {
		t.Errorf("Unexpected request body defaults: %+v", cfg.RequestBody)
	}
	if cfg.Auth.Default.Username != "user@user.com" || cfg.Auth.Default.KeyName != "X-API-KEY" {
		t.Errorf("Unexpected auth defaults: %+v", cfg.Auth.Default)
	}
	if len(cfg.Headers) != 2 || cfg.Headers[1] != (HeaderEntry{Key: "Content-Type", Value: "application/json"}) {
		t.Errorf("Unexpected default headers: %+v", cfg.Headers)
	}
	if cfg.Output.FileName != "route_collection" || len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != "json" {
		t.Errorf("Unexpected output defaults: %+v", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Built-in defaults should validate: %v", err)
	}
}
