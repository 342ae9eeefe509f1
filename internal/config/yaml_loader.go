package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLoader implements Loader for YAML files
type YAMLLoader struct {
	// Default config file path
	DefaultPath string
}

// NewYAMLLoader creates a new YAML config loader
func NewYAMLLoader(defaultPath string) *YAMLLoader {
	return &YAMLLoader{
		DefaultPath: defaultPath,
	}
}

// envPrefix roots every environment variable override under this
// application's namespace so STATEKIT_MANIFESTDIR never collides with an
// unrelated MANIFESTDIR the host process happens to export.
const envPrefix = "STATEKIT"

// Load implements Loader.Load for YAML files
func (l *YAMLLoader) Load(cfg *EngineConfig) error {
	if err := l.LoadFromFile(l.DefaultPath, cfg); err != nil {
		return fmt.Errorf("loading config from default path: %w", err)
	}

	if err := l.LoadWithOverrides(cfg); err != nil {
		return fmt.Errorf("applying environment overrides: %w", err)
	}

	return nil
}

// LoadFromFile implements Loader.LoadFromFile for YAML files
func (l *YAMLLoader) LoadFromFile(filePath string, cfg *EngineConfig) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshaling YAML: %w", err)
	}

	return nil
}

// LoadWithOverrides implements Loader.LoadWithOverrides
func (l *YAMLLoader) LoadWithOverrides(cfg *EngineConfig) error {
	return applyEnvironmentOverrides(cfg)
}

// applyEnvironmentOverrides applies environment variables as overrides to the config
func applyEnvironmentOverrides(cfg *EngineConfig) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	// Process each field of the config struct
	return walkStructForEnvOverrides(v, t, envPrefix)
}

// walkStructForEnvOverrides walks through a struct applying env var overrides
func walkStructForEnvOverrides(v reflect.Value, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Get the JSON tag (if any) to use as the env var name
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}

		// Remove any options from the tag
		tagParts := strings.Split(tag, ",")
		tag = tagParts[0]

		// Build the environment variable name
		envName := buildEnvVarName(prefix, tag)

		// If this is a nested struct, recursively process it
		if field.Type.Kind() == reflect.Struct {
			if err := walkStructForEnvOverrides(fieldValue, field.Type, envName); err != nil {
				return err
			}
			continue
		}

		// Look for an environment variable with this name
		envValue, exists := os.LookupEnv(envName)
		if !exists {
			continue
		}

		// Apply the environment value to the field based on its type
		if err := applyEnvValueToField(fieldValue, envValue); err != nil {
			return fmt.Errorf("applying env var %s: %w", envName, err)
		}
	}

	return nil
}

// buildEnvVarName constructs an environment variable name from prefix and field
func buildEnvVarName(prefix, field string) string {
	parts := []string{}

	if prefix != "" {
		parts = append(parts, prefix)
	}

	parts = append(parts, field)

	// Join the parts and convert to uppercase
	envName := strings.Join(parts, "_")
	return strings.ToUpper(envName)
}

// applyEnvValueToField sets a field's value from an environment variable
// string. EngineConfig only ever needs string, bool, and int fields
// (ManifestDir, RecursionDepthLimit, the Logging/Metrics/Storage leaves) —
// this does not generalize past those three kinds.
func applyEnvValueToField(fieldValue reflect.Value, envValue string) error {
	switch fieldValue.Kind() {
	case reflect.String:
		fieldValue.SetString(envValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("parsing bool: %w", err)
		}
		fieldValue.SetBool(boolValue)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(envValue, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing int: %w", err)
		}
		fieldValue.SetInt(intValue)

	default:
		return fmt.Errorf("unsupported field type: %s", fieldValue.Kind())
	}

	return nil
}
