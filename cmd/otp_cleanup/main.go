package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"qavat/internal/database"
	"qavat/internal/repository"
)

// Разовая задача для cron: удаляет просроченные одноразовые коды.
// Коды старше суток никому не нужны даже для диагностики.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	otps := repository.NewOTPRepository(db)
	removed, err := otps.DeleteExpired(context.Background(), time.Now().Add(-24*time.Hour))
	if err != nil {
		log.Fatalf("otp cleanup failed: %v", err)
	}

	log.Printf("otp cleanup completed: removed=%d", removed)
}
