package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Andrey1104/train-station-api-service/internal/server"
)

func main() {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file loaded, using environment")
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
