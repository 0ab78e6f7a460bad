package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/recipe-favorites/backend/internal/model"
)

// MigrationFiles returns the forward migrations in dir sorted by name.
// Files ending in _rollback.sql are excluded.
func MigrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, "_rollback.sql") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// MigrationVersion extracts VERSION from a VERSION_name.sql file name
func MigrationVersion(file string) string {
	return strings.SplitN(file, "_", 2)[0]
}

// SchemaMigrationsDDL creates the table recording applied SQL migrations
const SchemaMigrationsDDL = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

// ErrNoMigrations is returned when a rollback finds nothing applied
var ErrNoMigrations = errors.New("no migrations to rollback")

// RunMigrations brings the schema up to date. sqlite stores are
// auto-migrated from the model; postgres runs the SQL files in dir.
func RunMigrations(db *gorm.DB, migrationsDir string, log *logrus.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("using gorm auto-migration for sqlite")
		return db.AutoMigrate(&model.Favorite{})
	}
	return ApplySQLMigrations(db, migrationsDir, log)
}

// ApplySQLMigrations runs every forward migration in dir that is not yet
// recorded in schema_migrations. Each file and its record commit together.
func ApplySQLMigrations(db *gorm.DB, migrationsDir string, log *logrus.Logger) error {
	files, err := MigrationFiles(migrationsDir)
	if err != nil {
		return err
	}

	if err := db.Exec(SchemaMigrationsDDL).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, file := range files {
		version := MigrationVersion(file)

		var count int64
		if err := db.Table("schema_migrations").Where("version = ?", version).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.WithField("migration", file).Debug("skipping migration, already applied")
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, file))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", file, err)
			}
			if err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", version, file).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", file, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.WithField("migration", file).Info("applied migration")
	}

	return nil
}

// RollbackLastMigration runs the NNN_name_rollback.sql of the highest applied
// version and removes its record. It returns the rolled back file name.
func RollbackLastMigration(db *gorm.DB, migrationsDir string, log *logrus.Logger) (string, error) {
	if err := db.Exec(SchemaMigrationsDDL).Error; err != nil {
		return "", fmt.Errorf("failed to create migrations table: %w", err)
	}

	var last struct {
		Version string
		Name    string
	}
	res := db.Table("schema_migrations").Select("version, name").Order("version DESC").Limit(1).Scan(&last)
	if res.Error != nil {
		return "", fmt.Errorf("failed to get last migration: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return "", ErrNoMigrations
	}

	rollbackFile := strings.TrimSuffix(last.Name, ".sql") + "_rollback.sql"
	content, err := os.ReadFile(filepath.Join(migrationsDir, rollbackFile))
	if err != nil {
		return "", fmt.Errorf("failed to read rollback file: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(string(content)).Error; err != nil {
			return fmt.Errorf("failed to execute rollback %s: %w", rollbackFile, err)
		}
		if err := tx.Exec("DELETE FROM schema_migrations WHERE version = ?", last.Version).Error; err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	log.WithField("migration", last.Name).Info("rolled back migration")
	return last.Name, nil
}
