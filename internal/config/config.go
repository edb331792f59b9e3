package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the notifier service.
type Config struct {
	Port       string
	DBPath     string
	CronSecret string

	FCMServerKey    string
	VAPIDPublicKey  string
	VAPIDPrivateKey string

	ScanTimezone *time.Location
	ScanHour     int

	LogLevel  string
	LogFormat string

	S3Endpoint       string
	S3Bucket         string
	S3Region         string
	S3AccessKey      string
	S3SecretKey      string
	BackupPassphrase string
}

// Load reads configuration from environment variables. Only the database
// path has a baked-in default; push credentials and the cron secret may be
// absent, which leaves the affected features disabled rather than failing
// startup.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnvOrDefault("PORT", "8080"),
		DBPath:     getEnvOrDefault("DB_PATH", "notifier.db"),
		CronSecret: os.Getenv("CRON_SECRET"),

		FCMServerKey:    os.Getenv("FCM_SERVER_KEY"),
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),

		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Region:         getEnvOrDefault("S3_REGION", "auto"),
		S3AccessKey:      os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:      os.Getenv("S3_SECRET_KEY"),
		BackupPassphrase: os.Getenv("BACKUP_PASSPHRASE"),
	}

	tz := getEnvOrDefault("SCAN_TIMEZONE", "Asia/Ho_Chi_Minh")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("SCAN_TIMEZONE %q: %w", tz, err)
	}
	cfg.ScanTimezone = loc

	hourStr := getEnvOrDefault("SCAN_HOUR", "7")
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return nil, fmt.Errorf("SCAN_HOUR %q: must be an hour between 0 and 23", hourStr)
	}
	cfg.ScanHour = hour

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default if
// not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
