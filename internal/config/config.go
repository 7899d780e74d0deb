package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	DBHost string
	DBUser string
	DBPass string
	DBName string
	DBPort string

	RedisURL string

	MeiliHost   string
	MeiliAPIKey string

	CloudinaryUploadFolder string

	LineChannelSecret string

	// AdminLineIDs seeds the admin set at startup (comma separated LINE
	// user IDs). Membership is still resolved from the store per request.
	AdminLineIDs []string
}

func Load() *Config {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	return &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: os.Getenv("DB_PASS"),
		DBName: getEnv("DB_NAME", "aksipoin"),
		DBPort: getEnv("DB_PORT", "5432"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliHost:   os.Getenv("MEILISEARCH_HOST"),
		MeiliAPIKey: os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "aksipoin"),

		LineChannelSecret: os.Getenv("LINE_CHANNEL_SECRET"),

		AdminLineIDs: splitList(os.Getenv("ADMIN_LINE_IDS")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
