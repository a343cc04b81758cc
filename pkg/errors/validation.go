package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateEntryName validates the display name of a saved gallery entry.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateEntryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "entry name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "entry name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "entry name contains invalid control characters")
		}
	}

	return nil
}

// entryIDRegex matches the identifiers the gallery hands out: lowercase
// hex and dashes, as in a canonical UUID.
var entryIDRegex = regexp.MustCompile(`^[0-9a-f][0-9a-f-]{0,63}$`)

// ValidateEntryID validates a gallery entry ID before it is used as a file
// name or database key. It rejects anything that could escape the store
// directory.
func ValidateEntryID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "entry ID cannot be empty")
	}

	if !entryIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid entry ID: %q", id)
	}

	return nil
}

// componentNameRegex matches registry names such as "list-row" or
// "sequence-cylinders-3d".
var componentNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateComponentName checks that name is shaped like a registry name.
// The code is returned unchanged so callers can report which registry the
// name was meant for.
func ValidateComponentName(code Code, kind, name string) error {
	if name == "" {
		return New(code, "%s name cannot be empty", kind)
	}

	if !componentNameRegex.MatchString(name) {
		return New(code, "invalid %s name: %q", kind, name)
	}

	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
