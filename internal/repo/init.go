package repo

import (
	"github.com/KNICEX/btcmarkets-cli/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Invocation{})
}
