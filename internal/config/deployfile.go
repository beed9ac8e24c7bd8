package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
)

// DeployFileName is the optional project configuration file
const DeployFileName = "deploy.toml"

// loadEnvFiles loads .env and .env.local from the project root. Variables
// already present in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadDeployFile loads and parses deploy.toml if it exists.
// Returns (nil, nil) when deploy.toml does not exist.
func loadDeployFile(projectRoot string) (*config.DeployFileConfig, error) {
	path := filepath.Join(projectRoot, DeployFileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var cfg config.DeployFileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DeployFileName, err)
	}

	cfg.Network.Name = os.ExpandEnv(cfg.Network.Name)
	cfg.Network.RPCURL = os.ExpandEnv(cfg.Network.RPCURL)
	cfg.Record.Path = os.ExpandEnv(cfg.Record.Path)
	cfg.Artifacts.Dir = os.ExpandEnv(cfg.Artifacts.Dir)
	for name, component := range cfg.Components {
		component.Artifact = os.ExpandEnv(component.Artifact)
		cfg.Components[name] = component
	}

	return &cfg, nil
}
