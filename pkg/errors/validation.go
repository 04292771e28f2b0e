package errors

import (
	"math"
	"strings"
	"unicode"
)

// Viewport bounds accepted by [ValidateSize].
const (
	MinSize = 60
	MaxSize = 16384
)

const (
	maxNameLen = 512
	maxPathLen = 500
)

// ValidateSize rejects a viewport side that is not a finite number of
// pixels within [MinSize, MaxSize].
func ValidateSize(size float64) error {
	switch {
	case math.IsNaN(size) || math.IsInf(size, 0):
		return New(ErrCodeInvalidSize, "size must be a finite number")
	case size < MinSize || size > MaxSize:
		return New(ErrCodeInvalidSize, "size %g out of range [%d, %d]", size, MinSize, MaxSize)
	}
	return nil
}

// ValidateNodeName checks one segment of a focus path such as a/b. The
// segment may hold any printable text except '/'.
func ValidateNodeName(name string) error {
	if err := checkText(ErrCodeInvalidInput, "node name", name, maxNameLen); err != nil {
		return err
	}
	if strings.ContainsRune(name, '/') {
		return New(ErrCodeInvalidInput, "node name cannot contain '/': %q", name)
	}
	return nil
}

// ValidatePath checks an output file path before anything is written.
func ValidatePath(path string) error {
	return checkText(ErrCodeInvalidPath, "path", path, maxPathLen)
}

// checkText rejects empty, overlong and control-character text.
func checkText(code Code, what, s string, limit int) error {
	if s == "" {
		return New(code, "%s cannot be empty", what)
	}
	if len(s) > limit {
		return New(code, "%s too long (max %d characters)", what, limit)
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return New(code, "%s contains control characters", what)
	}
	return nil
}
