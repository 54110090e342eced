// Package config provides centralized default values for embedvideo-go
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database Configuration
	DBPath      string
	DBURL       string // libsql:// URL for remote Turso databases; empty means local SQLite
	DBAuthToken string

	// Consent Policy
	RequireConsent    bool
	ShowPrivacyNotice bool

	// oEmbed Resolution
	OEmbedTimeout      time.Duration
	OEmbedCacheTTL     time.Duration
	OEmbedRateLimit    int // requests per second against upstream endpoints
	OEmbedRateBurst    int
	OEmbedMaxBodyBytes int64

	// Media / Thumbnails
	MediaPath         string
	MediaBaseURL      string
	ThumbnailMaxWidth int

	// Localization
	MessagesPath  string
	DefaultLocale string

	// Admin Authentication
	AdminPasswordHash string
	JWTSecret         string
	TokenLifetime     time.Duration

	// Cache Maintenance
	CacheCleanupInterval time.Duration
	ProviderCacheTTL     time.Duration

	// Logging
	LogDirectory string
	LogToFile    bool
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database Configuration
	DBPath = getEnvString("DB_PATH", "./data/providers.db")
	DBURL = getEnvString("DB_URL", "")
	DBAuthToken = getEnvString("DB_AUTH_TOKEN", "")

	// Consent Policy
	RequireConsent = getEnvBool("REQUIRE_CONSENT", false)
	ShowPrivacyNotice = getEnvBool("SHOW_PRIVACY_NOTICE", false)

	// oEmbed Resolution
	OEmbedTimeout = getEnvDuration("OEMBED_TIMEOUT", 10*time.Second)
	OEmbedCacheTTL = getEnvDuration("OEMBED_CACHE_TTL", time.Hour)
	OEmbedRateLimit = getEnvInt("OEMBED_RATE_LIMIT", 5)
	OEmbedRateBurst = getEnvInt("OEMBED_RATE_BURST", 10)
	OEmbedMaxBodyBytes = int64(getEnvInt("OEMBED_MAX_BODY_BYTES", 1<<20))

	// Media / Thumbnails
	MediaPath = getEnvString("MEDIA_PATH", "./media")
	MediaBaseURL = getEnvString("MEDIA_BASE_URL", "http://localhost:8080/media")
	ThumbnailMaxWidth = getEnvInt("THUMBNAIL_MAX_WIDTH", 640)

	// Localization
	MessagesPath = getEnvString("MESSAGES_PATH", "./messages")
	DefaultLocale = getEnvString("DEFAULT_LOCALE", "en")

	// Admin Authentication
	AdminPasswordHash = getEnvString("ADMIN_PASSWORD_HASH", "")
	JWTSecret = getEnvString("JWT_SECRET", "")
	TokenLifetime = getEnvDuration("TOKEN_LIFETIME", 24*time.Hour)

	// Cache Maintenance
	CacheCleanupInterval = getEnvDuration("CACHE_CLEANUP_INTERVAL", 30*time.Minute)
	ProviderCacheTTL = getEnvDuration("PROVIDER_CACHE_TTL", 24*time.Hour)

	// Logging
	LogDirectory = getEnvString("LOG_DIRECTORY", "logs")
	LogToFile = getEnvBool("LOG_TO_FILE", false)
}
