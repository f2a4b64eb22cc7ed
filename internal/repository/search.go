package repository

import (
	"strings"

	"gorm.io/gorm"
)

// likeEscaper escapes LIKE wildcards so a search term is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern for a substring match.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// ilike is a case-insensitive LIKE. Postgres gets ILIKE, which folds every
// letter. Elsewhere it falls back to LOWER(col) LIKE, and SQLite's LOWER only
// folds ASCII.
func ilike(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "postgres" {
		return column + ` ILIKE ? ESCAPE '\'`
	}
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}
