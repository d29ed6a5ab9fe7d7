package errors

import (
	"strings"
	"unicode"
)

// ValidateAssetName validates an asset display name for safety and
// correctness. It rejects names that could be used for path traversal or
// injection when the name is later used to derive output filenames.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //)
//   - No null bytes or backslashes
//   - Maximum length of 256 characters
func ValidateAssetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "asset name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "asset name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "asset name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "asset name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
// It prevents writes through null bytes or control characters and keeps
// path lengths reasonable. Absolute and relative paths are both allowed -
// output targets are an explicit user choice, unlike asset names.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
