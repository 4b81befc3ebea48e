// Package config loads application settings from the environment,
// with an optional .env file merged in for local development.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every setting the application reads. It is built once at
// process start and passed explicitly to the components that need it.
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"local"`
	AppPort string `envconfig:"APP_PORT" default:"8080"`

	// Telegram bot.
	BotToken       string `envconfig:"BOT_TOKEN"`
	AdminChatID    string `envconfig:"ADMIN_CHAT_ID"`
	TelegramAPIURL string `envconfig:"TELEGRAM_API_URL" default:"https://api.telegram.org"`

	// Restaurant.
	RestaurantName string            `envconfig:"RESTAURANT_NAME" default:"Popays Fast Food"`
	DefaultBranch  string            `envconfig:"DEFAULT_BRANCH" default:"kosmonavt"`
	Branches       map[string]string `envconfig:"BRANCHES" default:"kosmonavt:Kosmonavt,derizli:Derizli Kosmonavt"`

	// Database.
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"popays.db"`

	// Catalog API.
	CatalogBackend string   `envconfig:"CATALOG_BACKEND" default:"db"`
	CORSOrigins    []string `envconfig:"CORS_ORIGINS" default:"http://127.0.0.1:5500,http://localhost:5500,http://127.0.0.1:3000,http://localhost:3000"`

	// Flat-file catalog backend.
	CategoriesFile string `envconfig:"CATEGORIES_FILE" default:"categories.json"`
	ProductsFile   string `envconfig:"PRODUCTS_FILE" default:"products.json"`

	// Storage disks.
	StorageDisk      string `envconfig:"STORAGE_DISK" default:"local"`
	StorageLocalRoot string `envconfig:"STORAGE_LOCAL_ROOT" default:"storage"`
	StorageURL       string `envconfig:"STORAGE_URL" default:"http://localhost:8080/storage"`
	S3Bucket         string `envconfig:"S3_BUCKET"`
	S3Region         string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Key            string `envconfig:"S3_KEY"`
	S3Secret         string `envconfig:"S3_SECRET"`
	S3Endpoint       string `envconfig:"S3_ENDPOINT"`
	S3URL            string `envconfig:"S3_URL"`

	// Outbound notification send timeout. Persistence must never wait on
	// the chat gateway longer than this.
	NotifyTimeout time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"5s"`

	// Optional MongoDB log sink.
	LogMongoURI        string `envconfig:"LOG_MONGO_URI"`
	LogMongoDB         string `envconfig:"LOG_MONGO_DB" default:"popays"`
	LogMongoCollection string `envconfig:"LOG_MONGO_COLLECTION" default:"logs"`

	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"4194304"`
}

// Load merges a .env file (if present) into the process environment and
// decodes the result into a Config.
func Load() (*Config, error) {
	if err := mergeDotEnv(".env"); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// BranchName maps a branch tag to its display name, falling back to the
// raw tag for branches that are not configured.
func (c *Config) BranchName(tag string) string {
	if name, ok := c.Branches[tag]; ok {
		return name
	}
	return tag
}

// mergeDotEnv sets each KEY=value pair from path into the environment,
// without overriding variables that are already set.
func mergeDotEnv(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}
