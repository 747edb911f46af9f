package database

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/team-task-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// likeEscaper escapes LIKE wildcards with '!', which needs no quoting in
// any of the supported dialects, unlike a backslash under MySQL.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsFold filters column by a case-insensitive substring match.
// The term is matched literally. An empty term leaves the query untouched.
func ContainsFold(column, term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '!'", pattern)
	}
}
