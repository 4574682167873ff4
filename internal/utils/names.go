package utils

import "strings"

// NormalizeName produces the canonical lookup form of a company or room name:
// trimmed, inner whitespace collapsed to single spaces, lower-cased. The
// uniqueness constraints on companies.name_norm and rooms.name_norm are built
// over this form so "Meeting Room B" and "meeting  room b" collide.
func NormalizeName(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// TitleName formats a name for storage and display with the first letter of
// each word capitalized, e.g. "meeting room b" -> "Meeting Room B".
func TitleName(raw string) string {
	words := strings.Fields(strings.ToLower(raw))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// NameToSlug converts a display name to a URL slug, e.g. "Meeting Room B" ->
// "meeting-room-b".
func NameToSlug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// SlugToName converts a URL slug back to a normalized lookup name, e.g.
// "meeting-room-b" -> "meeting room b".
func SlugToName(slug string) string {
	return NormalizeName(strings.ReplaceAll(slug, "-", " "))
}
