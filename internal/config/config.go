package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, loaded once in main and
// passed down explicitly.
type Config struct {
	HTTPAddr  string
	JWTSecret string
	DB        DBConfig
	SMS       SMSConfig
	Push      PushConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Timezone string
}

// SMSConfig carries Vonage credentials. From is the sender name shown
// on outbound messages.
type SMSConfig struct {
	APIKey    string
	APISecret string
	From      string
}

// PushConfig carries the FCM server key.
type PushConfig struct {
	ServerKey string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on env vars")
	}

	return &Config{
		HTTPAddr:  getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		JWTSecret: getEnv("JWT_SECRET", "supersecret"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "storedash"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Timezone: getEnv("DB_TIMEZONE", "UTC"),
		},
		SMS: SMSConfig{
			APIKey:    getEnv("VONAGE_API_KEY", ""),
			APISecret: getEnv("VONAGE_API_SECRET", ""),
			From:      getEnv("SMS_FROM", "Storedash"),
		},
		Push: PushConfig{
			ServerKey: getEnv("FCM_SERVER_KEY", ""),
		},
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
