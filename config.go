package main

import (
	"os"
)

// Config is read from the environment. A .env file in the working directory
// is loaded first by godotenv/autoload.
type Config struct {
	Port          string
	DatabasePath  string // empty disables visitor analytics
	ContentPath   string // empty uses the content embedded in the binary
	ResumeDir     string
	StaticDir     string
	ImagesDir     string
	AdminUsername string
	AdminPassword string
	// HashSalt keeps visitor hashes comparable across restarts. A random
	// salt is generated when it is empty.
	HashSalt string
}

func loadConfig() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		DatabasePath:  getenv("DATABASE_PATH", "portfolio.db"),
		ContentPath:   os.Getenv("CONTENT_PATH"),
		ResumeDir:     getenv("RESUME_DIR", "./resume"),
		StaticDir:     getenv("STATIC_DIR", "./static"),
		ImagesDir:     getenv("IMAGES_DIR", "./images"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		HashSalt:      os.Getenv("HASH_SALT"),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
