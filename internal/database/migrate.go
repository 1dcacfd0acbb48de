package database

import (
	"gorm.io/gorm"

	"github.com/smartrecipe/backend/internal/model"
)

// AutoMigrate applies the GORM schema for all persisted models. The
// SQL files under migrations/ remain the source of truth for managed
// postgres deployments; this path covers sqlite and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Recipe{},
		&model.User{},
	)
}
