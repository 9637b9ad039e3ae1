package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration, read once at startup and passed
// down explicitly.
type Config struct {
	ListenAddr      string
	DBPath          string
	SecretKeyPath   string
	UploadPath      string
	SessionTTLHours int
	RememberTTLDays int
	LogLevel        string
	LogFile         string
}

// Load reads configuration from the environment, after loading an optional
// .env file. Every value has a usable default so a bare invocation works.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		DBPath:          getEnv("DB_PATH", "data/roombrowse.db"),
		SecretKeyPath:   getEnv("SECRET_KEY_PATH", "data/secret.key"),
		UploadPath:      getEnv("UPLOAD_PATH", "data/uploads"),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),
		RememberTTLDays: getEnvInt("REMEMBER_TTL_DAYS", 30),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
