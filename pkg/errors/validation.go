package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidateFieldName validates a column mapping field name.
// Field names address CSV header columns and must be simple identifiers.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidMapping, "field name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMapping, "field name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates an output file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateFormat validates an output format against the set of supported
// format names.
func ValidateFormat(format string, supported []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}

	for _, s := range supported {
		if format == s {
			return nil
		}
	}

	return New(ErrCodeInvalidFormat, "unsupported format %q (supported: %s)",
		format, strings.Join(supported, ", "))
}
