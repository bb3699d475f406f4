package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DBConfig holds the admin service's Postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Timezone string
}

// Config gathers everything both services read from the environment.
type Config struct {
	PlannerAddr string
	AdminAddr   string

	// SyncBaseURL is the route server base the planner syncs against.
	SyncBaseURL string
	SyncTimeout time.Duration

	// DataDir holds the planner's local state: the saved-routes
	// collection and the session token.
	DataDir string

	LogFile string

	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	DB DBConfig
}

// Load reads .env (if present) and the environment, with defaults for
// local development.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return Config{
		PlannerAddr: getEnv("PLANNER_ADDR", ":8081"),
		AdminAddr:   getEnv("ADMIN_ADDR", ":8080"),

		SyncBaseURL: getEnv("SYNC_BASE_URL", "https://yus.kwscloud.in/yus"),
		SyncTimeout: time.Duration(getEnvInt("SYNC_TIMEOUT_SECONDS", 15)) * time.Second,

		DataDir: getEnv("DATA_DIR", "./data"),
		LogFile: getEnv("LOG_FILE", "./logs/app.log"),

		JWTSecret:     getEnv("JWT_SECRET", "supersecret"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@routemaster.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "routemaster"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Timezone: getEnv("DB_TIMEZONE", "UTC"),
		},
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
