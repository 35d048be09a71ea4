package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort         string
	AppEnv          string
	StoreBaseURL    string
	YellowAPIKey    string
	YellowAPISecret string
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:         os.Getenv("APP_PORT"),
		AppEnv:          os.Getenv("APP_ENV"),
		StoreBaseURL:    os.Getenv("STORE_BASE_URL"),
		YellowAPIKey:    os.Getenv("YELLOW_API_KEY"),
		YellowAPISecret: os.Getenv("YELLOW_API_SECRET"),
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          os.Getenv("DB_PORT"),
	}

	if cfg.StoreBaseURL == "" {
		log.Fatal("STORE_BASE_URL not set, cannot build the processor callback URL")
	}

	if cfg.YellowAPIKey == "" || cfg.YellowAPISecret == "" {
		log.Fatal("Yellow API credentials not loaded properly")
	}

	return cfg
}
