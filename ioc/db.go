package ioc

import (
	"fmt"

	"github.com/KNICEX/btcmarkets-cli/internal/repo"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the invocation journal. It returns nil when the journal is disabled.
func InitDB() (*gorm.DB, error) {
	if !viper.GetBool("journal.enabled") {
		return nil, nil
	}
	dsn := viper.GetString("journal.dsn")

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", dsn, err)
	}
	// sqlite allows one writer; snapshot calls journal concurrently
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := repo.InitTables(db); err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return db, nil
}
