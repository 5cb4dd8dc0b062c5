package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port         string
	MongoURI     string
	MongoDB      string
	JWTSecret    string
	JWTExpDays   int
	OTPTTLMin    int
	OTPDailyCap  int
	DriveBaseURL string
	SMTP         SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// Load reads .env (if present) and builds the Config with sane defaults.
// MONGO_URI and JWT_SECRET have no usable defaults; callers should fail
// fast if they are empty.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		MongoURI:     getEnv("MONGO_URI", ""),
		MongoDB:      getEnv("MONGO_DB", "kiitquest"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpDays:   getEnvInt("JWT_EXP_DAYS", 30),
		OTPTTLMin:    getEnvInt("OTP_TTL_MIN", 10),
		OTPDailyCap:  getEnvInt("OTP_DAILY_CAP", 15),
		DriveBaseURL: getEnv("DRIVE_BASE_URL", "https://drive.google.com"),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q, using default %d", key, v, fallback)
	}
	return fallback
}
