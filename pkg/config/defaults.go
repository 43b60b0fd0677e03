// Package config provides centralized default values for DainoStore
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

	// Store Capacity
	MaxStores           int
	MaxMemoryMB         int
	MaxSessionsPerStore int
	WarmCachesOnStartup bool
	InvalidateOnPublish bool

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int

	// TTL Configuration
	CatalogCacheTTL  time.Duration
	FragmentTTL      time.Duration
	SessionTTL       time.Duration
	AnalyticsBinTTL  time.Duration
	CreditBalanceTTL time.Duration

	// Cleanup Intervals
	CleanupInterval time.Duration
	CleanupVerbose  bool
	StoreTimeout    time.Duration
	CurrentHourTTL  time.Duration

	// Database Diagnostics
	SlowQueryThreshold time.Duration

	// Rendering
	DefaultGridColumns  int
	DefaultItemsPerPage int
	MaxVisiblePages     int

	// Provisioning
	ProvisionTokenTTL   time.Duration
	ActivationStepDelay time.Duration

	// Auth
	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int

	// Email
	ResendAPIKey string
	EmailFrom    string

	// Media
	ImageUploadDir  string
	ImageMaxWidth   int
	WebPQuality     float32
	ImageSizeSmall  int
	ImageSizeMedium int
	ImageSizeLarge  int
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Memory Management
	MaxStores = getEnvInt("MAX_STORES", 25)
	MaxMemoryMB = getEnvInt("MAX_MEMORY_MB", 768)
	MaxSessionsPerStore = getEnvInt("MAX_SESSIONS_PER_STORE", 5000)
	WarmCachesOnStartup = getEnvBool("WARM_CACHES_ON_STARTUP", true)
	InvalidateOnPublish = getEnvBool("INVALIDATE_ON_PUBLISH", true)

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)

	// TTL Configuration
	CatalogCacheTTL = time.Duration(getEnvInt("CATALOG_CACHE_TTL_HOURS", 24)) * time.Hour
	FragmentTTL = time.Duration(getEnvInt("FRAGMENT_TTL_HOURS", 1)) * time.Hour
	SessionTTL = time.Duration(getEnvInt("SESSION_TTL_HOURS", 168)) * time.Hour
	AnalyticsBinTTL = time.Duration(getEnvInt("ANALYTICS_BIN_TTL_DAYS", 28)) * 24 * time.Hour
	CreditBalanceTTL = time.Duration(getEnvInt("CREDIT_BALANCE_TTL_MINUTES", 5)) * time.Minute

	// Cleanup Intervals
	CleanupInterval = time.Duration(getEnvInt("CACHE_CLEANUP_INTERVAL_MINUTES", 30)) * time.Minute
	CleanupVerbose = getEnvBool("CACHE_CLEANUP_VERBOSE", false)
	StoreTimeout = time.Duration(getEnvInt("STORE_TIMEOUT_HOURS", 4)) * time.Hour
	CurrentHourTTL = time.Duration(getEnvInt("CURRENT_HOUR_TTL_MINUTES", 15)) * time.Minute

	// Database Diagnostics
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 100*time.Millisecond)

	// Rendering
	DefaultGridColumns = getEnvInt("DEFAULT_GRID_COLUMNS", 12)
	DefaultItemsPerPage = getEnvInt("DEFAULT_ITEMS_PER_PAGE", 12)
	MaxVisiblePages = getEnvInt("MAX_VISIBLE_PAGES", 7)

	// Provisioning
	ProvisionTokenTTL = getEnvDuration("PROVISION_TOKEN_TTL", 48*time.Hour)
	ActivationStepDelay = getEnvDuration("ACTIVATION_STEP_DELAY", 250*time.Millisecond)

	// Auth
	JWTSecret = getEnvString("JWT_SECRET", "")
	JWTExpiry = getEnvDuration("JWT_EXPIRY", 24*time.Hour)
	BcryptCost = getEnvInt("BCRYPT_COST", 10)

	// Email
	ResendAPIKey = getEnvString("RESEND_API_KEY", "")
	EmailFrom = getEnvString("EMAIL_FROM", "DainoStore <onboarding@dainostore.app>")

	// Media
	ImageUploadDir = getEnvString("IMAGE_UPLOAD_DIR", "media/images")
	ImageMaxWidth = getEnvInt("IMAGE_MAX_WIDTH", 1920)
	WebPQuality = float32(getEnvInt("WEBP_QUALITY", 80))
	ImageSizeSmall = getEnvInt("IMAGE_SIZE_SMALL", 300)
	ImageSizeMedium = getEnvInt("IMAGE_SIZE_MEDIUM", 600)
	ImageSizeLarge = getEnvInt("IMAGE_SIZE_LARGE", 1200)
}
