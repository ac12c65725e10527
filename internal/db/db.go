package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"talentradar/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init connects using DATABASE_URL and runs migrations. Fatal on failure;
// the server is useless without a database.
func Init() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		// Fallback for local dev if not set
		dbURL = "sqlite://talentradar.db"
		log.Println("DATABASE_URL not set, defaulting to 'sqlite://talentradar.db'")
	}

	var err error
	DB, err = Open(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}

// Open dials the database behind dbURL. Two schemes are supported:
// postgres://... for production and sqlite://<path> for local dev and tests.
func Open(dbURL string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(dbURL, "postgres://"):
		dialector = postgres.Open(strings.TrimPrefix(dbURL, "postgres://"))
	case strings.HasPrefix(dbURL, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(dbURL, "sqlite://"))
	default:
		return nil, fmt.Errorf("invalid DATABASE_URL %q: must start with postgres:// or sqlite://", dbURL)
	}

	g, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := g.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return g, nil
}

// Migrate keeps the schema in sync with the model structs.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.User{},
		&models.Player{},
		&models.Thread{},
		&models.Reply{},
		&models.Comment{},
		&models.CommentVote{},
		&models.ReplyVote{},
		&models.Rating{},
		&models.Poll{},
		&models.PollOption{},
		&models.PollVote{},
		&models.PlayerFollow{},
		&models.PlayerView{},
		&models.Notification{},
		&models.ReputationLog{},
		&models.Report{},
	)
}
