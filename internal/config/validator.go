package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Common errors surfaced by Validate beyond the struct-tag checks the
// validator library already covers.
var (
	ErrDirectoryNotExists = errors.New("directory does not exist")
	ErrNotADirectory      = errors.New("path is not a directory")
)

var structValidator = validator.New()

// Validate checks an EngineConfig for structural validity: struct-tag
// constraints (recursion depth bounds, closed sets for log level/format)
// via go-playground/validator, plus the one check reflection tags can't
// express — that ManifestDir actually exists.
func Validate(cfg *EngineConfig) error {
	if err := structValidator.Struct(cfg); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}

	if err := checkDirExists(cfg.ManifestDir); err != nil {
		return fmt.Errorf("manifestDir %q: %w", cfg.ManifestDir, err)
	}

	return nil
}

func checkDirExists(path string) error {
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrDirectoryNotExists
	}
	if err != nil {
		return fmt.Errorf("accessing %s: %w", path, err)
	}
	if !fi.IsDir() {
		return ErrNotADirectory
	}
	return nil
}
