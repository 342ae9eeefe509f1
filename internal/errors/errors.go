// Package errors defines the typed error sentinels the kernel surfaces to
// callers (spec §6 "Errors surfaced to callers") plus small helpers for
// wrapping and classifying them.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard errors package functions so callers never need to
// import both packages.
var (
	As     = errors.As
	Is     = errors.Is
	New    = errors.New
	Unwrap = errors.Unwrap
)

// Structural errors (band 1, spec §7): the caller's input is wrong or the
// manifest tree is misconfigured. Never retried.
var (
	ErrManifestFileNotFound   = errors.New("manifest file not found")
	ErrAmbiguousManifestFile  = errors.New("both .yml and .yaml variants exist for this file")
	ErrManifestParseFailed    = errors.New("manifest file failed to parse")
	ErrManifestLoadFailed     = errors.New("manifest load failed")
	ErrKeyNotFound            = errors.New("key not found in manifest trie")
	ErrRecursionLimitExceeded = errors.New("recursion limit exceeded")
	ErrTooManyTemplateTokens  = errors.New("template exceeds the six token limit")
)

// Adapter failures (band 3, spec §7): the store/load tier itself failed.
var (
	ErrStoreFailed = errors.New("store adapter failed")
	ErrLoadFailed  = errors.New("load adapter failed")
)

// Wrap wraps err with additional context, preserving it for errors.Is/As.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// WrapWithCode wraps err with additional context and associates it with a
// sentinel error code, so callers can errors.Is against either the
// sentinel or the original cause.
func WrapWithCode(err error, code error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf(format+": %w", append(args, err)...)
	return fmt.Errorf("%w: %w", code, wrapped)
}

// codes lists every sentinel GetErrorCode recognizes, in the order
// GetErrorCodeString checks them.
var codes = []error{
	ErrManifestFileNotFound,
	ErrAmbiguousManifestFile,
	ErrManifestParseFailed,
	ErrManifestLoadFailed,
	ErrKeyNotFound,
	ErrRecursionLimitExceeded,
	ErrTooManyTemplateTokens,
	ErrStoreFailed,
	ErrLoadFailed,
}

// GetErrorCode returns the sentinel error err is or wraps, or nil if err
// does not match any known code.
func GetErrorCode(err error) error {
	if err == nil {
		return nil
	}
	for _, code := range codes {
		if errors.Is(err, code) {
			return code
		}
	}
	return nil
}

// GetErrorCodeString returns a machine-readable name for the error code,
// for structured logging and metrics labels.
func GetErrorCodeString(err error) string {
	switch GetErrorCode(err) {
	case ErrManifestFileNotFound:
		return "MANIFEST_FILE_NOT_FOUND"
	case ErrAmbiguousManifestFile:
		return "AMBIGUOUS_MANIFEST_FILE"
	case ErrManifestParseFailed:
		return "MANIFEST_PARSE_FAILED"
	case ErrManifestLoadFailed:
		return "MANIFEST_LOAD_FAILED"
	case ErrKeyNotFound:
		return "KEY_NOT_FOUND"
	case ErrRecursionLimitExceeded:
		return "RECURSION_LIMIT_EXCEEDED"
	case ErrTooManyTemplateTokens:
		return "TOO_MANY_TEMPLATE_TOKENS"
	case ErrStoreFailed:
		return "STORE_FAILED"
	case ErrLoadFailed:
		return "LOAD_FAILED"
	default:
		return "UNKNOWN_ERROR"
	}
}
