package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	HTTPPort string

	MongoURL    string
	MongoDBName string

	SQLDriver string // "sqlite" | "pgx"
	SQLDSN    string

	RedisAddr string
	CacheTTL  time.Duration

	UseKafka      bool
	KafkaBrokers  []string
	KafkaGroupID  string
	MaxItemsPage  int
	UploadDir     string
	UploadMaxSize int64 // bytes
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// LoadConfig carga un .env opcional y lee la configuración del entorno.
func LoadConfig() *Config {
	// Si no hay .env seguimos con las variables del proceso.
	_ = godotenv.Load()

	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	// Solo se aceptan valores positivos; el resto usa el fallback.
	getInt := func(key string, fallback int) int {
		if n, err := strconv.Atoi(getEnv(key, "")); err == nil && n > 0 {
			return n
		}
		return fallback
	}

	uploadMB := getInt("FILEUPLOAD_MAX_SIZE", 2)

	return &Config{
		AppEnv:        getEnv("APP_ENV", "production"),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		MongoURL:      getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDBName:   getEnv("MONGO_DBNAME", "hexaplaces"),
		SQLDriver:     getEnv("SQL_DRIVER", "sqlite"),
		SQLDSN:        getEnv("SQL_DSN", "./hexaplaces_users.db"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		CacheTTL:      time.Duration(getInt("CACHE_TTL", 300)) * time.Second,
		UseKafka:      getEnv("USE_KAFKA", "false") == "true",
		KafkaBrokers:  strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "hexaplaces-cache"),
		MaxItemsPage:  getInt("MAX_ITEMS_PER_PAGE", 100),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		UploadMaxSize: int64(uploadMB) << 20,
	}
}
