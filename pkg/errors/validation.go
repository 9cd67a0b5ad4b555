package errors

import (
	"strings"
	"unicode"
)

// ValidateDimensions checks that a drawing surface of the given size leaves
// room for the axis. minWidth is the sum of the horizontal paddings; the
// usable axis length must be strictly positive.
func ValidateDimensions(width, height, minWidth float64) error {
	if width <= minWidth {
		return New(ErrCodeInvalidDimensions, "width %.0f too small (must exceed %.0f)", width, minWidth)
	}
	if height <= 0 {
		return New(ErrCodeInvalidDimensions, "height %.0f must be positive", height)
	}
	return nil
}

// ValidatePath validates an output file path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	return nil
}
