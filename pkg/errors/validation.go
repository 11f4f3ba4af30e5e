package errors

import (
	"strings"
	"unicode"
)

// ValidateLink validates a package link given on the command line.
// Links are opaque index tokens, so only shape problems that can never
// match a listing entry are rejected:
//   - No empty links
//   - No control characters or whitespace
//   - Maximum length of 1024 characters
func ValidateLink(link string) error {
	if link == "" {
		return New(ErrCodeInvalidLink, "link cannot be empty")
	}

	if len(link) > 1024 {
		return New(ErrCodeInvalidLink, "link too long (max 1024 characters)")
	}

	for _, r := range link {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidLink, "link contains invalid characters: %q", link)
		}
	}

	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL without a
// trailing slash, since package links are appended to it verbatim.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidConfig, "index URL cannot be empty")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return New(ErrCodeInvalidConfig, "index URL must start with http:// or https://: %q", raw)
	}
	if strings.HasSuffix(raw, "/") {
		return New(ErrCodeInvalidConfig, "index URL must not end with a slash: %q", raw)
	}
	return nil
}
