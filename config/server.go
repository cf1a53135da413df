package config

type ServerConfig struct {
	Host string `env:"AGENTEVAL_HOST"`
	Port int    `env:"AGENTEVAL_PORT"`
	// RemoteURL points the pipeline at a remote JSON-RPC control plane instead
	// of the in-process stage table.
	RemoteURL string `env:"AGENTEVAL_REMOTE_URL"`
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Host: "0.0.0.0",
		Port: 8080,
	}
}
