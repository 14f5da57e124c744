package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/homebase/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(page utils.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.PerPage)
	}
}
