package config

// EngineConfig holds the ambient configuration for a resolution engine
// process: where manifests live, how deep template recursion may go, and
// how the engine should log and report metrics. None of this reaches the
// manifest parser or bit codec (§9: the hot path never reads config).
type EngineConfig struct {
	ManifestDir         string        `yaml:"manifestDir" json:"manifestDir" validate:"required"`
	RecursionDepthLimit int           `yaml:"recursionDepthLimit" json:"recursionDepthLimit" validate:"gte=1,lte=64"`
	Logging             LoggingConfig `yaml:"logging" json:"logging"`
	Metrics             MetricsConfig `yaml:"metrics" json:"metrics"`
	Storage             StorageConfig `yaml:"storage" json:"storage"`
}

// StorageConfig names the backing stores for the KVS and Db client kinds.
// KVS is a single shared store opened once at startup; Db connections are
// opened lazily per distinct `connection` map a manifest resolves to, so
// there is no static Db DSN here.
type StorageConfig struct {
	KVSDriver string `yaml:"kvsDriver" json:"kvsDriver" validate:"omitempty,oneof=sqlite postgres"`
	KVSDSN    string `yaml:"kvsDsn" json:"kvsDsn"`
}

// LoggingConfig holds logging configuration, used identically whether the
// engine is embedded in a test or a long-running process.
type LoggingConfig struct {
	Level    string `yaml:"level" json:"level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	Format   string `yaml:"format" json:"format" validate:"omitempty,oneof=json console"`
	FilePath string `yaml:"filePath" json:"filePath"`
}

// MetricsConfig toggles Prometheus metrics collection for the engine.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// DefaultEngineConfig returns a config with the defaults an implementer
// would otherwise have to construct by hand: manifests in the current
// directory, a conservative recursion limit within the 10-20 range spec §4.J
// suggests, and info-level JSON logging.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ManifestDir:         ".",
		RecursionDepthLimit: 16,
		Logging:             LoggingConfig{Level: "info", Format: "json"},
		Metrics:             MetricsConfig{Enabled: false},
		Storage:             StorageConfig{KVSDriver: "sqlite", KVSDSN: "statekit-kv.db"},
	}
}
