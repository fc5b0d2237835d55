package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	SyncBatchSize      int
	SyncIncludeDeleted bool

	QueueWorkers      int
	QueuePollInterval time.Duration
	QueueTaskLease    time.Duration
	QueueMaxAttempts  int

	GoogleCredentialsFile string
	GoogleAdminSubject    string
	GoogleCustomerID      string
	GooglePageSize        int64
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "directory_sync"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		SyncBatchSize:      getEnvInt("SYNC_BATCH_SIZE", 100),
		SyncIncludeDeleted: getEnvBool("SYNC_INCLUDE_DELETED", true),

		QueueWorkers:      getEnvInt("QUEUE_WORKERS", 5),
		QueuePollInterval: getEnvDuration("QUEUE_POLL_INTERVAL", time.Second),
		QueueTaskLease:    getEnvDuration("QUEUE_TASK_LEASE", 5*time.Minute),
		QueueMaxAttempts:  getEnvInt("QUEUE_MAX_ATTEMPTS", 5),

		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		GoogleAdminSubject:    getEnv("GOOGLE_ADMIN_SUBJECT", ""),
		GoogleCustomerID:      getEnv("GOOGLE_CUSTOMER_ID", "my_customer"),
		GooglePageSize:        int64(getEnvInt("GOOGLE_PAGE_SIZE", 500)),
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
