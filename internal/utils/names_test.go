package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Meeting Room B":      "meeting room b",
		"  meeting  room b  ": "meeting room b",
		"ACME Corp":           "acme corp",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), "input %q", in)
	}
}

func TestTitleName(t *testing.T) {
	assert.Equal(t, "Meeting Room B", TitleName("meeting room b"))
	assert.Equal(t, "Acme Corp", TitleName("  ACME   corp "))
}

func TestSlugRoundTrip(t *testing.T) {
	slug := NameToSlug("Meeting Room B")
	assert.Equal(t, "meeting-room-b", slug)
	assert.Equal(t, "meeting room b", SlugToName(slug))
	// The round trip lands on the normalized form, which is what name
	// lookups compare against.
	assert.Equal(t, NormalizeName("Meeting Room B"), SlugToName(slug))
}
