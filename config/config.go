package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	GinMode         string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	MemcacheURL   string
	NatsURL       string
	ZipkinAddress string

	Storage *StorageConfig
	Google  *GoogleConfig
}

// StorageConfig describes an S3 compatible bucket used for post images.
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

// Enabled reports whether enough settings are present to presign uploads.
func (s *StorageConfig) Enabled() bool {
	return s != nil && s.BucketName != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

func GetStorageConfig() *StorageConfig {
	region := os.Getenv("STORAGE_REGION")
	if region == "" {
		region = "auto"
	}

	return &StorageConfig{
		Endpoint:        os.Getenv("STORAGE_ENDPOINT"),
		AccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("STORAGE_BUCKET"),
		PublicURL:       os.Getenv("STORAGE_PUBLIC_URL"),
		Region:          region,
	}
}

// Load reads the .env file when present and builds the service configuration
// from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Production deployments pass the environment directly
		log.Println("No .env file found, using process environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:            port,
		GinMode:         os.Getenv("GIN_MODE"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  durationFromEnv("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL: durationFromEnv("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		MemcacheURL:     os.Getenv("MEMCACHE_URL"),
		NatsURL:         os.Getenv("NATS_URL"),
		ZipkinAddress:   os.Getenv("ZIPKIN_ADDRESS"),
		Storage:         GetStorageConfig(),
		Google:          NewGoogleConfig(),
	}
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s %q, using %s", key, value, fallback)
		return fallback
	}
	return d
}
