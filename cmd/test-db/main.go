package main

import (
	"fmt"
	"log"
	"os"

	"github.com/you/medbooksvc/internal/infrastructure/database"
)

// Standalone database connectivity and migration check, useful when
// bringing up a new environment.
func main() {
	dsn := "host=localhost user=postgres password=postgres dbname=medbook port=5432 sslmode=disable"
	if envDSN := os.Getenv("DATABASE_DSN"); envDSN != "" {
		dsn = envDSN
	}

	fmt.Println("Database Connection Test")
	fmt.Println("========================")
	fmt.Printf("Connecting to: %s\n", dsn)

	db, err := database.Open(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	fmt.Println("✓ Database connection successful")

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}
	fmt.Println("✓ AutoMigrate completed successfully")

	for _, table := range []string{"doctors", "availability_slots", "appointments"} {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			log.Fatalf("Failed to query %s table: %v", table, err)
		}
		fmt.Printf("✓ %s table accessible (current count: %d)\n", table, count)
	}
}
