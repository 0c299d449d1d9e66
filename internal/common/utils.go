package common

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// SanitizeURL performs basic cleanup on URLs pulled out of sitemap entries.
// Location text frequently arrives with surrounding whitespace or newlines
// from pretty-printed XML.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// Sitemap loc values must be absolute; anything else is noise.
	if !strings.HasPrefix(cleaned, "http://") && !strings.HasPrefix(cleaned, "https://") {
		return ""
	}

	return cleaned
}
