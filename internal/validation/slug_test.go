package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Go Enthusiasts", "go-enthusiasts"},
		{"  Hello,  World!  ", "hello-world"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER case 42", "upper-case-42"},
		{"***", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.title))
		})
	}
}

func TestSlugify_TruncatesTo100(t *testing.T) {
	slug := Slugify(strings.Repeat("word ", 40))
	assert.LessOrEqual(t, len(slug), 100)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestValidateGroupSlug(t *testing.T) {
	assert.NoError(t, ValidateGroupSlug("go-enthusiasts"))
	assert.Error(t, ValidateGroupSlug("Bad Slug"))
	assert.Error(t, ValidateGroupSlug("-leading"))
	assert.Error(t, ValidateGroupSlug("trailing-"))
	assert.Error(t, ValidateGroupSlug("feed"), "reserved name")
	assert.Error(t, ValidateGroupSlug(""))
}
