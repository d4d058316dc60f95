// Package normalize provides helper functions for consistent string normalization
// across the application. Use these helpers instead of scattered strings.TrimSpace
// calls so every write path cleans input the same way.
package normalize

import (
	"strings"

	"github.com/dalemusser/strataexercise/internal/app/system/htmlsanitize"
)

// Username normalizes a username: markup stripped, whitespace trimmed.
// Use text.Fold() for the case-insensitive sort key.
func Username(s string) string {
	return strings.TrimSpace(htmlsanitize.StripTags(strings.TrimSpace(s)))
}

// Description normalizes an exercise description the same way as Username.
func Description(s string) string {
	return strings.TrimSpace(htmlsanitize.StripTags(strings.TrimSpace(s)))
}
