package errors

import (
	"regexp"
	"unicode"
)

// networkNameRegex matches the network names accepted by generators and
// definition files: lowercase identifiers with optional dashes.
var networkNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateNetworkName validates a network name for safety and correctness
// before it is resolved against the generator registry or used as a store
// key component.
func ValidateNetworkName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidNetwork, "network name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidNetwork, "network name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNetwork, "network name contains control characters")
		}
	}
	if !networkNameRegex.MatchString(name) {
		return New(ErrCodeInvalidNetwork, "invalid network name: %q", name)
	}
	return nil
}

// MaxWidth caps the wire count accepted from external callers. Layout and
// evaluation are linear in circuit size, but generated networks grow
// quadratically with width, so unbounded requests are rejected up front.
const MaxWidth = 1024

// ValidateWidth validates a requested wire count.
func ValidateWidth(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidWidth, "width must be at least 1, got %d", n)
	}
	if n > MaxWidth {
		return New(ErrCodeInvalidWidth, "width %d exceeds maximum %d", n, MaxWidth)
	}
	return nil
}

// ValidateScale validates a zoom factor for layout normalization.
func ValidateScale(k float64) error {
	if k <= 0 {
		return New(ErrCodeInvalidScale, "scale must be positive, got %g", k)
	}
	return nil
}
