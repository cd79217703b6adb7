package validation

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLimit is the suggestion cap used when a request limit is missing or invalid.
const DefaultLimit = 10

// MaxTermLength is the longest term accepted by the store, in runes.
const MaxTermLength = 200

// NormalizeQuery trims surrounding whitespace and lowercases the query.
// The result is both the match input and the client cache key.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// NormalizeTerm trims a selected term. Case is preserved.
func NormalizeTerm(term string) string {
	return strings.TrimSpace(term)
}

// ParseLimit converts a raw limit parameter. Non-positive or unparsable
// values fall back to DefaultLimit.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultLimit
	}
	return CoerceLimit(n)
}

// CoerceLimit applies the same rules as ParseLimit to an integer.
func CoerceLimit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	return n
}

// ValidateTerm checks a term for seeding: non-empty after trimming, bounded
// length, no control characters.
func ValidateTerm(term string) (bool, string) {
	term = NormalizeTerm(term)
	if term == "" {
		return false, "term is required"
	}
	if utf8.RuneCountInString(term) > MaxTermLength {
		return false, "term is too long"
	}
	for _, r := range term {
		if unicode.IsControl(r) {
			return false, "term contains control characters"
		}
	}
	return true, ""
}

// ValidateImageRef checks that an image reference is a relative path that can be
// resolved against the image base URL. Absolute URLs and schemes are rejected.
func ValidateImageRef(ref string) (bool, string) {
	if ref == "" {
		return true, ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false, "invalid image reference"
	}
	if u.Scheme != "" || u.Host != "" {
		return false, "image reference must be relative to the image base URL"
	}
	if strings.Contains(ref, "..") {
		return false, "image reference must not contain '..'"
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
