// Package format provides text cleanup utilities for decoded email content.
package format

import "strings"

var normalizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"\r\n", " ",
)

// Normalize replaces curly double quotes with straight quotes and collapses
// CRLF pairs to a single space. Mail clients love to smarten quotes, which
// would break quoted-value scanning downstream.
func Normalize(s string) string {
	return normalizer.Replace(s)
}
