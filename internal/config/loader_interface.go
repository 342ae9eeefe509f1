package config

// Loader is the interface for loading configuration
type Loader interface {
	// Load loads configuration from a source into the provided config struct
	Load(cfg *EngineConfig) error

	// LoadFromFile loads configuration from a specific file
	LoadFromFile(filePath string, cfg *EngineConfig) error

	// LoadWithOverrides loads configuration with environment variable overrides
	LoadWithOverrides(cfg *EngineConfig) error
}
