package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/neezar-abd/nzardev/internal/mailer"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Content  ContentConfig     `yaml:"content"`
	Docstore DocstoreConfig    `yaml:"docstore"`
	Auth     AuthConfig        `yaml:"auth"`
	SMTP     mailer.Config     `yaml:"smtp"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.Docstore.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	Environment string     `yaml:"environment"`
	LogLevel    slog.Level `yaml:"log_level"`
	HTTP        HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Environment, validation.Required, validation.In(EnvDevelopment, EnvProduction)),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// Development reports whether the app runs in development mode.
func (c *ApplicationConfig) Development() bool {
	return c.Environment != EnvProduction
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig holds the on-disk content locations.
type ContentConfig struct {
	// Root is the directory holding .mdx sources, laid out as
	// <root>/blog/*.mdx and <root>/projects/*.mdx.
	Root string `yaml:"root"`
	// PagesDir holds home.json and about.json.
	PagesDir string `yaml:"pages_dir"`
	// AssetsDir receives uploaded banners.
	AssetsDir string `yaml:"assets_dir"`
	// Watch re-scans the content root on file changes.
	Watch bool `yaml:"watch"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.PagesDir, validation.Required),
		validation.Field(&c.AssetsDir, validation.Required),
	)
}

// DocstoreConfig holds the document store database location.
type DocstoreConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the docstore configuration.
func (c *DocstoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds the access gate configuration.
//
// Mode controls how the gate is enforced:
//   - "disabled" (default): everything is open, suitable for local dev.
//   - "token": origin plus bearer checks are active; GateToken and
//     AdminToken must be non-empty.
type AuthConfig struct {
	Mode       string `yaml:"mode"`
	SiteOrigin string `yaml:"site_origin"`
	GateToken  string `yaml:"gate_token"`
	AdminToken string `yaml:"admin_token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken {
		if c.GateToken == "" || c.AdminToken == "" {
			return fmt.Errorf("auth: mode is %q but gate_token or admin_token is empty", AuthModeToken)
		}
		if c.SiteOrigin == "" {
			return fmt.Errorf("auth: mode is %q but site_origin is empty", AuthModeToken)
		}
	}
	return nil
}

// Enabled returns true when the access gate is active.
func (c *AuthConfig) Enabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			Environment: EnvDevelopment,
			LogLevel:    slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Root:      "./contents",
			PagesDir:  "./config/pages",
			AssetsDir: "./public/assets",
			Watch:     true,
		},
		Docstore: DocstoreConfig{
			Path: "./nzardev.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
