package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	// DB is the shared database handle. Nil when the connection failed at
	// startup; use Database() in handlers so the failure is reported per
	// request instead of crashing the process.
	DB *gorm.DB

	// ErrDatabaseUnavailable is returned whenever the backing store cannot be
	// reached. The message is deliberately actionable for operators.
	ErrDatabaseUnavailable = errors.New("cannot connect to database: the PostgreSQL instance may be down or DB_DSN may be unset; check the database service and environment configuration")
)

// Connect loads environment configuration and opens the database connection.
// A failure is returned, not fatal: the server still starts and every data
// call surfaces ErrDatabaseUnavailable instead.
func Connect() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return ErrDatabaseUnavailable
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return ErrDatabaseUnavailable
	}

	DB = db
	return nil
}

// Database returns the shared handle, or ErrDatabaseUnavailable when the
// connection never came up.
func Database() (*gorm.DB, error) {
	if DB == nil {
		return nil, ErrDatabaseUnavailable
	}
	return DB, nil
}
