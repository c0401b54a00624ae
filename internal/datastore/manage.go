package datastore

import (
	"fmt"

	"gorm.io/gorm"
)

// performAutoMigration creates or updates the three thesaurus tables.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Thesaurus{}, &ThesaurusKeyword{}, &ThesaurusKeywordLabel{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		GetLogger().Debug("Database initialized",
			"db_type", dbType,
			"connection", connectionInfo)
	}

	return nil
}
