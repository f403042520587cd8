package config

import (
	"os"
	"strconv"
	"strings"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	AllowOrigins []string

	// Pattern service
	DBPath         string
	MigrationsPath string
	ExportDir      string
	CanvasWidth    int
	CanvasHeight   int

	// Gateway
	PatternURL string
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		AllowOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),

		DBPath:         getEnv("PATTERN_DB_PATH", "data/db/patterns.db"),
		MigrationsPath: getEnv("PATTERN_MIGRATIONS", ""),
		ExportDir:      getEnv("PATTERN_EXPORT_DIR", "exports"),
		CanvasWidth:    getEnvAsInt("CANVAS_WIDTH", 500),
		CanvasHeight:   getEnvAsInt("CANVAS_HEIGHT", 500),

		PatternURL: getEnv("PATTERN_URL", "http://localhost:3001"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// getEnvAsList reads a comma separated list.
func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
