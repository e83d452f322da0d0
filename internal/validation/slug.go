// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const maxSlugLen = 100

var groupSlugRegex = regexp.MustCompile(`^[a-z0-9-]{1,100}$`)

var reservedGroupSlugs = map[string]struct{}{
	"admin":   {},
	"api":     {},
	"auth":    {},
	"feed":    {},
	"follow":  {},
	"groups":  {},
	"posts":   {},
	"users":   {},
	"ws":      {},
	"metrics": {},
	"login":   {},
	"signup":  {},
}

// ValidateGroupSlug validates group slug format and reserved names.
func ValidateGroupSlug(slug string) error {
	if !groupSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 1-100 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedGroupSlugs[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}

// Slugify derives a URL-safe slug from a group title: lowercase, runs of
// anything but letters and digits collapse into single hyphens, truncated
// to 100 characters.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimSuffix(slug[:maxSlugLen], "-")
	}
	return slug
}
