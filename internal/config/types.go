package config

const (
	// TransportStdio is the standard I/O transport.
	TransportStdio = "stdio"
	// TransportSSE is the Server-Sent Events transport.
	TransportSSE = "sse"
)

const (
	// EnvCompartmentID names the environment variable that selects the
	// default compartment scope for all tool calls.
	EnvCompartmentID = "OCI_COMPARTMENT_ID"
	// EnvConfigFile names the environment variable that overrides the
	// OCI credentials file location.
	EnvConfigFile = "OCI_CLI_CONFIG_FILE"
	// EnvProfile names the environment variable that overrides the
	// credentials profile.
	EnvProfile = "OCI_CLI_PROFILE"
)

// Config is the top-level configuration structure for ocictl.
type Config struct {
	OCI    OCISettings `yaml:"oci"`
	CLI    CLISettings `yaml:"cli"`
	Server ServerConfig `yaml:"server"`
}

// OCISettings selects the credentials and scope used for SDK calls.
type OCISettings struct {
	// ConfigFile is the path to the OCI credentials file. Empty means the
	// SDK default (~/.oci/config).
	ConfigFile string `yaml:"configFile,omitempty"`
	// Profile is the credentials profile to use. Empty means DEFAULT.
	Profile string `yaml:"profile,omitempty"`
	// CompartmentID scopes listings and actions. When empty the
	// OCI_COMPARTMENT_ID environment variable is consulted, and failing
	// that the tenancy OCID from the credentials file is used.
	CompartmentID string `yaml:"compartmentId,omitempty"`
}

// CLISettings configures the oci CLI fallback path.
type CLISettings struct {
	// Binary is the oci CLI executable name or path (default: "oci").
	Binary string `yaml:"binary,omitempty"`
	// Env holds additional environment variables for CLI invocations.
	Env map[string]string `yaml:"env,omitempty"`
}

// ServerConfig defines how the MCP server is exposed.
type ServerConfig struct {
	// Transport is "stdio" (default) or "sse".
	Transport string `yaml:"transport,omitempty"`
	// Host to bind to when using the SSE transport (default: localhost).
	Host string `yaml:"host,omitempty"`
	// Port for the SSE endpoint (default: 8090).
	Port int `yaml:"port,omitempty"`
}

// GetDefaultConfig returns the built-in configuration that user and project
// files are layered on top of.
func GetDefaultConfig() Config {
	return Config{
		OCI: OCISettings{
			Profile: "DEFAULT",
		},
		CLI: CLISettings{
			Binary: "oci",
		},
		Server: ServerConfig{
			Transport: TransportStdio,
			Host:      "localhost",
			Port:      8090,
		},
	}
}
