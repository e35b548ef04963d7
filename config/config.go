package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load pulls a .env file into the environment when one exists. Missing
// files are fine, deployments usually set real env vars instead.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
		return
	}
	log.Println("loaded environment variables from .env")
}

// Addr returns the listen address (PLAYGROUND_ADDR, default :8080).
func Addr() string {
	return getenv("PLAYGROUND_ADDR", ":8080")
}

// WorldsDir returns the world save directory (PLAYGROUND_WORLDS,
// default "worlds").
func WorldsDir() string {
	return getenv("PLAYGROUND_WORLDS", "worlds")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
