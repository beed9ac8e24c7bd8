package config

// DeployFileConfig is the on-disk shape of deploy.toml
type DeployFileConfig struct {
	Network    DeployFileNetwork              `toml:"network"`
	Record     DeployFileRecord               `toml:"record"`
	Artifacts  DeployFileArtifacts            `toml:"artifacts"`
	Components map[string]DeployFileComponent `toml:"components"`
}

// DeployFileNetwork holds the RPC settings
type DeployFileNetwork struct {
	Name         string `toml:"name"`
	RPCURL       string `toml:"rpc_url"`
	ChainID      uint64 `toml:"chain_id"`
	PollInterval string `toml:"poll_interval"`
}

// DeployFileRecord locates the address record
type DeployFileRecord struct {
	Path string `toml:"path"`
}

// DeployFileArtifacts locates compiled artifacts and how to produce them
type DeployFileArtifacts struct {
	Dir          string   `toml:"dir"`
	BuildCommand []string `toml:"build_command"`
}

// DeployFileComponent overrides per-component settings
type DeployFileComponent struct {
	Artifact string `toml:"artifact"`
}
