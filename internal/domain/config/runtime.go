package config

import (
	"time"

	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Network settings
	Network *Network

	// Deployer secret, hex encoded. Only ever read from the environment.
	PrivateKey string `json:"-"`

	// Files
	RecordPath   string // Absolute path of the address record
	ArtifactsDir string // Absolute path of the compiled artifacts

	// Build step run before artifacts are indexed
	Build        bool
	BuildCommand []string

	// Component artifact overrides, keyed by component
	Artifacts map[models.Component]string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration
	PollInterval   time.Duration

	// Config source tracking
	ConfigSource string // "deploy.toml" or "" when only env/flags were used
}

// Network represents network configuration
type Network struct {
	ChainID uint64 `json:"chainId"`
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
}

// ArtifactFor returns the artifact name configured for a component
func (c *RuntimeConfig) ArtifactFor(component models.Component) string {
	if name, ok := c.Artifacts[component]; ok && name != "" {
		return name
	}
	return component.DefaultArtifact()
}
