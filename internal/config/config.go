package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Grouping strategies
const (
	StrategyPrefix     = "prefix"
	StrategyNestedPath = "nested_path"
	StrategyController = "controller"
)

// Body encodings
const (
	BodyRaw      = "raw"
	BodyFormData = "formdata"
)

// Auth schemes
const (
	AuthBearer = "bearer"
	AuthBasic  = "basic"
	AuthAPIKey = "api_key"
)

// Config represents the application configuration
type Config struct {
	Name        string `mapstructure:"name"`        // Collection name
	Description string `mapstructure:"description"` // Collection description
	BaseURL     string `mapstructure:"base_url"`    // Value of the {{base_url}} variable

	Routes      RoutesConfig      `mapstructure:"routes"`
	Collection  CollectionConfig  `mapstructure:"collection"`
	RequestBody RequestBodyConfig `mapstructure:"request_body"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Headers     []HeaderEntry     `mapstructure:"headers"` // Default headers, in order

	Input  InputConfig  `mapstructure:"input"`
	Output OutputConfig `mapstructure:"output"`
}

// RoutesConfig selects which routes are exported
type RoutesConfig struct {
	Prefix  string      `mapstructure:"prefix"` // API prefix (e.g. "api")
	Include RouteFilter `mapstructure:"include"`
	Exclude RouteFilter `mapstructure:"exclude"`
}

// RouteFilter holds include or exclude criteria
type RouteFilter struct {
	Patterns    []string `mapstructure:"patterns"`    // URI globs, "*" matches any run of characters
	Middleware  []string `mapstructure:"middleware"`  // Middleware names
	Controllers []string `mapstructure:"controllers"` // Fully-qualified controller names
}

// CollectionConfig drives the folder layout
type CollectionConfig struct {
	GroupingStrategy string `mapstructure:"grouping_strategy"` // prefix | nested_path | controller
	MaxNestingDepth  int    `mapstructure:"max_nesting_depth"` // nested_path depth bound
}

// RequestBodyConfig drives sample body generation
type RequestBodyConfig struct {
	DefaultBodyType string         `mapstructure:"default_body_type"` // raw | formdata
	DefaultValues   []DefaultValue `mapstructure:"default_values"`    // Per-field overrides
}

// DefaultValue overrides the sample value of one field path
type DefaultValue struct {
	Field string      `mapstructure:"field"` // Exact field path (e.g. "items.*.name")
	Value interface{} `mapstructure:"value"`
}

// AuthConfig holds authentication settings
type AuthConfig struct {
	Enabled             bool         `mapstructure:"enabled"`
	Type                string       `mapstructure:"type"`     // bearer | basic | api_key
	Location            string       `mapstructure:"location"` // header | query (api_key only)
	Default             AuthDefaults `mapstructure:"default"`
	ProtectedMiddleware []string     `mapstructure:"protected_middleware"`
	ExcludedRoutes      []string     `mapstructure:"excluded_routes"` // Login-style endpoint tokens
}

// AuthDefaults seeds the credential variables
type AuthDefaults struct {
	Token    string `mapstructure:"token"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	KeyName  string `mapstructure:"key_name"`
	KeyValue string `mapstructure:"key_value"`
}

// HeaderEntry is one default header. A list keeps header case and order,
// which a viper map would fold to lower case.
type HeaderEntry struct {
	Key   string `mapstructure:"key"`
	Value string `mapstructure:"value"`
}

// InputConfig locates the route manifest
type InputConfig struct {
	RoutesFile string `mapstructure:"routes_file"` // YAML or JSON route manifest
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir      string   `mapstructure:"dir"`       // Output directory
	FileName string   `mapstructure:"file_name"` // Output file name (without extension)
	Formats  []string `mapstructure:"formats"`   // Export formats (json, yaml, openapi, excel, html, word)
}

// Load reads the configuration from a file or uses defaults
// If configPath is empty, it looks for "config.yaml" in the current directory
// If the file doesn't exist, it uses sensible defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			fmt.Println("==========================================")
			fmt.Println("Config file not found. Using defaults:")
			fmt.Println("  Routes: ./routes.yaml")
			fmt.Println("  Output: ./output")
			fmt.Println("==========================================")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration without touching the filesystem
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("built-in config defaults do not decode: %v", err))
	}
	cfg.normalize()
	return &cfg
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "Laravel Routes")
	v.SetDefault("description", "API Documentation")
	v.SetDefault("base_url", "http://localhost")

	// Routes
	v.SetDefault("routes.prefix", "api")
	v.SetDefault("routes.include.patterns", []string{})
	v.SetDefault("routes.include.middleware", []string{})
	v.SetDefault("routes.include.controllers", []string{})
	v.SetDefault("routes.exclude.patterns", []string{})
	v.SetDefault("routes.exclude.middleware", []string{})
	v.SetDefault("routes.exclude.controllers", []string{})

	// Collection layout
	v.SetDefault("collection.grouping_strategy", StrategyPrefix)
	v.SetDefault("collection.max_nesting_depth", 10)

	// Request bodies
	v.SetDefault("request_body.default_body_type", BodyRaw)
	v.SetDefault("request_body.default_values", []map[string]interface{}{})

	// Auth
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.type", AuthBearer)
	v.SetDefault("auth.location", "header")
	v.SetDefault("auth.default.token", "")
	v.SetDefault("auth.default.username", "user@user.com")
	v.SetDefault("auth.default.password", "password")
	v.SetDefault("auth.default.key_name", "X-API-KEY")
	v.SetDefault("auth.default.key_value", "your-api-key-here")
	v.SetDefault("auth.protected_middleware", []string{"auth", "auth:api", "auth:sanctum"})
	v.SetDefault("auth.excluded_routes", []string{
		"login",
		"register",
		"password-reset",
		"password_reset",
		"reset-password",
		"forgot-password",
	})

	// Headers
	v.SetDefault("headers", []map[string]interface{}{
		{"key": "Accept", "value": "application/json"},
		{"key": "Content-Type", "value": "application/json"},
	})

	// Input / Output
	v.SetDefault("input.routes_file", "routes.yaml")
	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", "route_collection")
	v.SetDefault("output.formats", []string{"json"})
}

// normalize trims and lower-cases enum-like values
func (c *Config) normalize() {
	c.Routes.Prefix = strings.Trim(strings.TrimSpace(c.Routes.Prefix), "/")
	c.Collection.GroupingStrategy = strings.ToLower(strings.TrimSpace(c.Collection.GroupingStrategy))
	c.RequestBody.DefaultBodyType = strings.ToLower(strings.TrimSpace(c.RequestBody.DefaultBodyType))
	c.Auth.Type = strings.ToLower(strings.TrimSpace(c.Auth.Type))
	c.Auth.Location = strings.ToLower(strings.TrimSpace(c.Auth.Location))
	if c.Auth.Location == "" {
		c.Auth.Location = "header"
	}
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	if c.Input.RoutesFile != "" {
		absRoutes, err := filepath.Abs(c.Input.RoutesFile)
		if err != nil {
			return fmt.Errorf("failed to resolve input.routes_file: %w", err)
		}
		c.Input.RoutesFile = absRoutes
	}

	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// GetOutputPath returns the full path for an output file with the given extension
func (c *Config) GetOutputPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.FileName+"."+strings.TrimPrefix(ext, "."))
}

// DefaultValueMap returns the per-field sample overrides keyed by exact field path
func (c *Config) DefaultValueMap() map[string]interface{} {
	values := make(map[string]interface{}, len(c.RequestBody.DefaultValues))
	for _, dv := range c.RequestBody.DefaultValues {
		if dv.Field == "" {
			continue
		}
		values[dv.Field] = dv.Value
	}
	return values
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.BaseURL, validation.Required, validation.By(isBaseURL)),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(&c.Collection,
		validation.Field(&c.Collection.GroupingStrategy,
			validation.In(StrategyPrefix, StrategyNestedPath, StrategyController)),
		validation.Field(&c.Collection.MaxNestingDepth, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("collection: %w", err)
	}

	if err := validation.ValidateStruct(&c.RequestBody,
		validation.Field(&c.RequestBody.DefaultBodyType, validation.In(BodyRaw, BodyFormData)),
	); err != nil {
		return fmt.Errorf("request_body: %w", err)
	}

	if err := validation.ValidateStruct(&c.Auth,
		validation.Field(&c.Auth.Type, validation.In(AuthBearer, AuthBasic, AuthAPIKey)),
		validation.Field(&c.Auth.Location, validation.In("header", "query")),
	); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if err := validation.ValidateStruct(&c.Output,
		validation.Field(&c.Output.FileName, validation.Required),
	); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	for i, h := range c.Headers {
		if strings.TrimSpace(h.Key) == "" {
			return fmt.Errorf("headers[%d]: key cannot be empty", i)
		}
	}

	return nil
}

// isBaseURL accepts absolute URLs and variable placeholders such as "{{host}}"
func isBaseURL(value interface{}) error {
	s, _ := value.(string)
	if strings.HasPrefix(s, "{{") && strings.HasSuffix(s, "}}") {
		return nil
	}
	if !govalidator.IsURL(s) {
		return fmt.Errorf("must be a valid URL")
	}
	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Route Postman Configuration ===")
	fmt.Printf("Collection:       %s\n", c.Name)
	fmt.Printf("Base URL:         %s\n", c.BaseURL)
	fmt.Printf("Route Prefix:     %s\n", c.Routes.Prefix)
	fmt.Printf("Grouping:         %s (max depth %d)\n", c.Collection.GroupingStrategy, c.Collection.MaxNestingDepth)
	fmt.Printf("Body Type:        %s\n", c.RequestBody.DefaultBodyType)
	fmt.Printf("Auth:             enabled=%v type=%s\n", c.Auth.Enabled, c.Auth.Type)
	fmt.Printf("Routes File:      %s\n", c.Input.RoutesFile)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output Formats:   %v\n", c.Output.Formats)
	fmt.Println("===================================")
}
