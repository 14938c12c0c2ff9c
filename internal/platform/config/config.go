package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	ProgressModePersisted = "persisted"
	ProgressModeDemo      = "demo"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBConnStr     string

	RedisAddr     string // Empty disables the queue; progress is recomputed inline
	RedisPassword string
	RedisDB       int

	ProgressQueueName      string
	ProgressLockPrefix     string
	ProgressLockTTLSeconds int
	ProgressSweepSpec      string
	ProgressMode           string

	FeaturedLimit int
	SeedFile      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:                getEnv("API_PORT", "8080"),
		JWTKey:                 []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:                 time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		StorageDriver:          getEnv("STORAGE_DRIVER", StorageMemory),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "user"),
		DBPassword:             getEnv("DB_PASSWORD", "password"),
		DBName:                 getEnv("DB_NAME", "edu_platform"),
		DBSslMode:              getEnv("DB_SSLMODE", "disable"),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		ProgressQueueName:      getEnv("PROGRESS_QUEUE_NAME", "progress_jobs_queue"),
		ProgressLockPrefix:     getEnv("PROGRESS_LOCK_PREFIX", "progress_lock"),
		ProgressLockTTLSeconds: getEnvAsInt("PROGRESS_LOCK_TTL_SECONDS", 30),
		ProgressSweepSpec:      getEnv("PROGRESS_SWEEP_SPEC", "@every 10m"),
		ProgressMode:           getEnv("PROGRESS_MODE", ProgressModePersisted),
		FeaturedLimit:          getEnvAsInt("FEATURED_LIMIT", 3),
		SeedFile:               getEnv("SEED_FILE", ""),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	if string(cfg.JWTKey) == "defaultsecret" {
		log.Println("WARN: Using default JWT_SECRET. Set it in your environment.")
	}
	if cfg.ProgressMode != ProgressModePersisted && cfg.ProgressMode != ProgressModeDemo {
		log.Printf("WARN: Unknown PROGRESS_MODE %q, using %q", cfg.ProgressMode, ProgressModePersisted)
		cfg.ProgressMode = ProgressModePersisted
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
