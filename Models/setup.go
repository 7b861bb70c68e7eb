package Models

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	if err := Migrate(DB); err != nil {
		log.Println(err)
	}
}

// Migrate runs schema migrations in dependency order.
func Migrate(db *gorm.DB) error {
	// Users and tasks first, then the records referencing them.
	if err := db.AutoMigrate(&User{}, &Task{}); err != nil {
		return err
	}
	return db.AutoMigrate(&Evaluation{}, &Payment{})
}
