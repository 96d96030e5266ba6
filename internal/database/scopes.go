package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/utils"
)

// UsernamePage orders users by username and cuts out one page.
// The id tie-breaker keeps pages stable across collations that fold case.
func UsernamePage(page utils.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("username ASC").Order("id ASC").
			Offset(page.Offset()).
			Limit(page.Size)
	}
}
