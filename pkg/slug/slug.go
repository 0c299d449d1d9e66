// Package slug derives the processing key for a catalog URL. The slug is the
// idempotence key: checkpoint membership, artifact naming, and skip logic all
// key on it, never on the original URL.
package slug

import "strings"

// Normalize extracts the slug from a URL containing requiredPath.
// The part after the last occurrence of requiredPath is taken, surrounding
// slashes are trimmed, and internal hyphens become spaces. The derivation is
// a pure function of its inputs.
func Normalize(identifier, requiredPath string) string {
	rest := identifier
	if idx := strings.LastIndex(identifier, requiredPath); idx >= 0 {
		rest = identifier[idx+len(requiredPath):]
	}
	rest = strings.Trim(rest, "/")
	return strings.ReplaceAll(rest, "-", " ")
}

// Filename returns the deterministic artifact name for a slug.
// Example: "wallet basics" -> "wallet_basics_icon.png".
func Filename(s string) string {
	return strings.ReplaceAll(s, " ", "_") + "_icon.png"
}
