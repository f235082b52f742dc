package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"codeberg.org/devmentor/server/devmentor/users"
	"codeberg.org/devmentor/server/internal/auth"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// creates (or reuses) a local test user and prints a JWT for it,
// so API routes behind auth can be exercised with curl
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	dbConnString := os.Getenv("DATABASE_URL")
	if dbConnString == "" {
		log.Fatal("DATABASE_URL not set")
	}

	dbPool, err := pgxpool.New(context.Background(), dbConnString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	repo := users.NewRepository(dbPool)

	user, err := repo.FindOrCreateByProvider(
		context.Background(),
		"test",
		"test-user-123",
		"test@devmentor.dev",
		"testuser",
		"Test User",
		"",
	)
	if err != nil {
		log.Fatalf("Failed to create test user: %v", err)
	}

	fmt.Printf("✅ Test user: %s (ID: %s)\n", user.Email, user.ID)

	token, err := auth.GenerateJWT(user.ID, user.Email)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("\n🔑 Test JWT Token:\n%s\n\n", token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
