package intel

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fold prepares text for vocabulary matching: NFKC compatibility
// normalization followed by lowercasing. NFKC collapses fullwidth digits,
// circled letters and similar compatibility forms into their ASCII
// equivalents so they cannot dodge substring matching.
func Fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
