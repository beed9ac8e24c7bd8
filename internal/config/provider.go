package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
)

// EnvPrefix prefixes every environment variable the tool reads
const EnvPrefix = "ALGEBRA"

const (
	defaultRecordPath   = "deploys.json"
	defaultArtifactsDir = "artifacts"
)

// projectMarkers identify the project root, checked in order in every directory
var projectMarkers = []string{
	DeployFileName,
	"hardhat.config.ts",
	"hardhat.config.js",
	"foundry.toml",
	defaultRecordPath,
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		PrivateKey:     v.GetString("private-key"),
		RecordPath:     resolvePath(projectRoot, v.GetString("record")),
		ArtifactsDir:   resolvePath(projectRoot, v.GetString("artifacts")),
		Build:          v.GetBool("build"),
		BuildCommand:   v.GetStringSlice("build-command"),
		Artifacts:      make(map[models.Component]string),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non-interactive") || v.GetBool("yes"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		PollInterval:   v.GetDuration("poll-interval"),
		ConfigSource:   v.GetString("config_source"),
	}
	if cfg.PrivateKey == "" {
		cfg.PrivateKey = os.Getenv("PRIVATE_KEY")
	}

	if rpcURL := v.GetString("rpc-url"); rpcURL != "" {
		cfg.Network = &config.Network{
			Name:    v.GetString("network-name"),
			RPCURL:  rpcURL,
			ChainID: v.GetUint64("chain-id"),
		}
	}

	for _, c := range models.Components {
		if name := v.GetString(artifactKey(c)); name != "" {
			cfg.Artifacts[c] = name
		}
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to the first directory
// holding a deploy.toml, a Hardhat or Foundry config, or an address record
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a contracts project (none of %s found)", strings.Join(projectMarkers, ", "))
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance. Precedence is flag,
// then environment, then deploy.toml, then built-in defaults.
func SetupViper(projectRoot string, cmd *cobra.Command) (*viper.Viper, error) {
	loadEnvFiles(projectRoot)

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("record", defaultRecordPath)
	v.SetDefault("artifacts", defaultArtifactsDir)
	v.SetDefault("timeout", "0s")
	v.SetDefault("poll-interval", "2s")
	v.SetDefault("debug", false)
	v.SetDefault("non-interactive", false)
	v.SetDefault("project_root", projectRoot)

	deployFile, err := loadDeployFile(projectRoot)
	if err != nil {
		return nil, err
	}
	if deployFile != nil {
		applyDeployFile(v, deployFile)
		v.Set("config_source", DeployFileName)
	}

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(f.Name, f); err != nil {
				panic(err)
			}
		})
	}

	return v, nil
}

// applyDeployFile registers deploy.toml values as defaults so env and flags
// still override them
func applyDeployFile(v *viper.Viper, file *config.DeployFileConfig) {
	setIf := func(key, value string) {
		if value != "" {
			v.SetDefault(key, value)
		}
	}

	setIf("rpc-url", file.Network.RPCURL)
	setIf("network-name", file.Network.Name)
	setIf("poll-interval", file.Network.PollInterval)
	if file.Network.ChainID != 0 {
		v.SetDefault("chain-id", file.Network.ChainID)
	}
	setIf("record", file.Record.Path)
	setIf("artifacts", file.Artifacts.Dir)
	if len(file.Artifacts.BuildCommand) > 0 {
		v.SetDefault("build-command", file.Artifacts.BuildCommand)
	}

	for name, component := range file.Components {
		c, ok := componentFor(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: unknown component %q in %s\n", name, DeployFileName)
			continue
		}
		setIf(artifactKey(c), component.Artifact)
	}
}

// componentFor accepts either the component name or its record key
func componentFor(name string) (models.Component, bool) {
	return lo.Find(models.Components, func(c models.Component) bool {
		return strings.EqualFold(string(c), name) || strings.EqualFold(string(c.RecordKey()), name)
	})
}

func artifactKey(c models.Component) string {
	return "components." + string(c.RecordKey()) + ".artifact"
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

