package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the label verification service.
type Config struct {
	// HTTP server
	HTTPAddr string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// OCR configuration
	OCRLanguage     string
	ExtractTimeout  time.Duration
	DownloadTimeout time.Duration
	ImageCacheSize  int
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret_app"),
		DBName:     getEnv("DB_NAME", "labelverify"),

		// Regulatory labels on this platform are Brazilian, hence the
		// Portuguese default.
		OCRLanguage:     getEnv("OCR_LANGUAGE", "por"),
		ExtractTimeout:  getDurationEnv("OCR_EXTRACT_TIMEOUT", 30*time.Second),
		DownloadTimeout: getDurationEnv("IMAGE_DOWNLOAD_TIMEOUT", 30*time.Second),
		ImageCacheSize:  getIntEnv("IMAGE_CACHE_SIZE", 64),
	}
}

// DSN builds the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
