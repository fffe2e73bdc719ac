package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	// mcpMode serves the MCP stdio transport instead of the HTTP API.
	mcpMode bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithMCPMode switches the process into MCP stdio mode.
func WithMCPMode() Option {
	return func(a *application) {
		a.mcpMode = true
	}
}
