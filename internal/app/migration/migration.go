package migration

import (
	"database/sql"
	"embed"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

func Source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "sql",
	}
}

// Run applies (or rolls back, for max steps) the embedded migrations.
func Run(db *sql.DB, direction migrate.MigrationDirection, max int, log *logrus.Logger) (int, error) {
	n, err := migrate.ExecMax(db, "postgres", Source(), direction, max)
	if err != nil {
		log.WithError(err).Error("Error executing migration")
		return n, err
	}

	log.WithFields(logrus.Fields{
		"applied":   n,
		"direction": directionName(direction),
	}).Info("Migrations applied")
	return n, nil
}

func Status(db *sql.DB, log *logrus.Logger) error {
	records, err := migrate.GetMigrationRecords(db, "postgres")
	if err != nil {
		return err
	}
	for _, record := range records {
		log.WithField("applied_at", record.AppliedAt).Info(record.Id)
	}
	return nil
}

func directionName(direction migrate.MigrationDirection) string {
	if direction == migrate.Down {
		return "down"
	}
	return "up"
}
