package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pageza/recipe-favorites/backend/internal/database"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the SQL migration files")
	flag.Parse()

	log := logrus.New()
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormlogger.New(log, gormlogger.Config{LogLevel: gormlogger.Warn}))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	if *rollback {
		if _, err := database.RollbackLastMigration(db, *dir, log); err != nil {
			if errors.Is(err, database.ErrNoMigrations) {
				log.Info("no migrations to rollback")
				return
			}
			log.Fatal(err)
		}
		return
	}

	if err := database.ApplySQLMigrations(db, *dir, log); err != nil {
		log.Fatal(err)
	}
	log.Info("all migrations applied")
}
