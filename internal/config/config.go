package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string
	JWTSecret  string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
}

var GlobalConfig *Config

func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	env := getEnv("ENV", "development") // default to development

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	// Set DB defaults based on environment
	var dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode string
	if env == "production" {
		dbHost = getEnv("DB_HOST", "")
		dbPort = getEnv("DB_PORT", "5432")
		dbUser = getEnv("DB_USER", "")
		dbPassword = getEnv("DB_PASSWORD", "")
		dbName = getEnv("DB_NAME", "")
		dbSSLMode = getEnv("DB_SSLMODE", "require")
	} else {
		dbHost = getEnv("DB_HOST", "localhost")
		dbPort = getEnv("DB_PORT", "5432")
		dbUser = getEnv("DB_USER", "postgres")
		dbPassword = getEnv("DB_PASSWORD", "password")
		dbName = getEnv("DB_NAME", "yamdb")
		dbSSLMode = getEnv("DB_SSLMODE", "disable")
	}

	GlobalConfig = &Config{
		DBHost:     dbHost,
		DBPort:     dbPort,
		DBUser:     dbUser,
		DBPassword: dbPassword,
		DBName:     dbName,
		DBSSLMode:  dbSSLMode,

		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "default-jwt-secret-change-in-production"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "noreply@yamdb.local"),
	}

	if GlobalConfig.SMTPHost == "" {
		log.Println("⚠️ SMTP credentials not set, confirmation codes will only be logged")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
