package main

import (
	"log"
	"os"

	"agentcity-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	userIdStr := os.Getenv("SEED_USER_ID")
	if userIdStr == "" {
		log.Fatal("Error: SEED_USER_ID is not set (the user to attach history to)")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		log.Fatalf("Error: SEED_USER_ID is not a valid UUID: %v", err)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Seeding transaction history for user %s...", userId)

	if err := SeedTransactions(db, userId); err != nil {
		log.Fatalf("Error: Seeding failed: %v", err)
	}

	log.Println("Success: Transaction history seeded.")
}
