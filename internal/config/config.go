package config

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/hdr13/ecommerce-api/internal/models"
	"github.com/hdr13/ecommerce-api/pkg/db"
)

type Config struct {
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	KAFKA_ADDRESS string
	LOG_LEVEL     string
	SERVER_PORT   string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       os.Getenv("DB_PORT"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		LOG_LEVEL:     envDefault("LOG_LEVEL", "info"),
		SERVER_PORT:   envDefault("SERVER_PORT", "8080"),
	}

	return config, nil
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
}

func InitDB(ctx context.Context, c *Config) (*gorm.DB, error) {
	gdb, err := db.Open(ctx, c.DSN())
	if err != nil {
		return nil, err
	}
	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate registers the order_products join table and creates the schema.
// Shared with the test setup so both run the same migration.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.SetupJoinTable(&models.Order{}, "Products", &models.OrderProduct{}); err != nil {
		return fmt.Errorf("setup join table: %w", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderProduct{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
