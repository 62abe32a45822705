package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Logging   LoggingConfig
	Upload    UploadConfig
	Artifacts ArtifactConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds application-logger configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// UploadConfig holds upload handling configuration
type UploadConfig struct {
	MaxBytes    int64
	PreviewRows int
}

// ArtifactConfig holds artifact sink configuration. An empty Dir selects the
// in-memory store; TTLHours of 0 disables retention sweeps.
type ArtifactConfig struct {
	Dir      string
	TTLHours int
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnv("LOG_PRETTY", "false") == "true",
		},
		Upload: UploadConfig{
			MaxBytes:    int64(getEnvInt("MAX_UPLOAD_BYTES", 10*1024*1024)),
			PreviewRows: getEnvInt("PREVIEW_ROWS", 20),
		},
		Artifacts: ArtifactConfig{
			Dir:      getEnv("ARTIFACT_DIR", ""),
			TTLHours: getEnvInt("ARTIFACT_TTL_HOURS", 24),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
