package model

import (
	"strings"
)

// ParseGenres decodes the stored genres column, e.g. `{Jazz,"Hip-Hop"}`.
func ParseGenres(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	genres := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part == "" {
			continue
		}
		genres = append(genres, part)
	}
	return genres
}

// FormatGenres is the inverse of ParseGenres.
func FormatGenres(genres []string) string {
	cleaned := make([]string, 0, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(strings.NewReplacer(",", " ", "{", "", "}", "", `"`, "").Replace(g))
		if g == "" {
			continue
		}
		cleaned = append(cleaned, g)
	}
	return "{" + strings.Join(cleaned, ",") + "}"
}
