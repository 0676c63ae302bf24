package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/drivers/database"
	"carelink-service/internal/app/drivers/logger"
	"carelink-service/internal/app/migration"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/utils"

	"github.com/google/uuid"
	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up, down or status")
	steps := flag.Int("steps", 0, "maximum number of migrations to apply, 0 means all")
	adminEmail := flag.String("create-admin-email", "", "create a platform admin with this email after migrating")
	adminName := flag.String("create-admin-name", "Platform Admin", "full name for the created admin")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(driverConfig, internalConfig)

	db := database.NewPostgresDB(driverConfig)
	defer db.Close()

	switch *direction {
	case "up":
		if _, err := migration.Run(db, migrate.Up, *steps, log); err != nil {
			os.Exit(1)
		}
	case "down":
		if _, err := migration.Run(db, migrate.Down, *steps, log); err != nil {
			os.Exit(1)
		}
	case "status":
		if err := migration.Status(db, log); err != nil {
			log.WithError(err).Fatal("Failed to read migration status")
		}
		return
	default:
		log.Fatalf("unknown direction %q", *direction)
	}

	if *adminEmail == "" {
		return
	}

	// The admin password is read from the environment so it never lands in shell history.
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD must be set to create an admin")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.WithError(err).Fatal("Failed to hash admin password")
	}

	admin := &models.Profile{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(*adminEmail)),
		PasswordHash: hash,
		FullName:     *adminName,
		Role:         constvars.RoleAdmin,
	}
	_, err = db.ExecContext(context.Background(),
		`INSERT INTO profiles (id, email, password_hash, full_name, role) VALUES ($1, $2, $3, $4, $5)`,
		admin.ID, admin.Email, admin.PasswordHash, admin.FullName, admin.Role,
	)
	if err != nil {
		log.WithError(err).Fatal("Failed to create admin profile")
	}
	log.WithField("email", admin.Email).Info("Admin profile created")
}
