package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetPath string
	ListenAddr  string

	// DefaultCity seeds the city selection when a request supplies none,
	// matching the dashboard's default dropdown value.
	DefaultCity string

	// SharePercentThreshold is the market-share cutoff below which cities
	// are merged into the "Other" slice.
	SharePercentThreshold float64

	HistogramBins int

	PersistToDB      bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DatasetPath: getEnv("DATASET_PATH", "./data/housing_with_coordinates.csv"),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),

		DefaultCity:           getEnv("DEFAULT_CITY", "Huntington Beach"),
		SharePercentThreshold: getEnvFloat("SHARE_PERCENT_THRESHOLD", 2),
		HistogramBins:         getEnvInt("HISTOGRAM_BINS", 20),

		PersistToDB:      getEnvBool("PERSIST_TO_DB", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "housing"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "housing123"),
		PostgresDB:       getEnv("POSTGRES_DB", "housing_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
