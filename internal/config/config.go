package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	ServerAddr  string `mapstructure:"SERVER_ADDR"`

	// BaseURL is the public origin of the backend. Relative image paths
	// returned by the upload endpoint are resolved against it.
	BaseURL   string `mapstructure:"BASE_URL"`
	UploadDir string `mapstructure:"UPLOAD_DIR"`

	JWTSecret    string `mapstructure:"JWT_SECRET"`
	AuthRequired bool   `mapstructure:"AUTH_REQUIRED"`

	// RedisAddr enables the rating-aggregate cache when non-empty.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// APIBaseURL is the default origin the CLI client talks to.
	APIBaseURL string `mapstructure:"API_BASE_URL"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("AUTH_REQUIRED", false)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
