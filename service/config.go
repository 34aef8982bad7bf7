package service

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Gemini struct {
		APIKey     string
		TextModel  string
		ImageModel string
		EditModel  string
	}

	ImageHost struct {
		APIKey   string
		Endpoint string
	}

	Stripe struct {
		PublishableKey string
		SecretKey      string
		WebhookSecret  string
	}

	Upload struct {
		MaxSize int64
		Dir     string
	}

	Admin struct {
		Email    string
		Password string
	}

	Pipeline struct {
		ImageDelay time.Duration
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/drbusiness.db"),
	}

	// JWT
	config.JWT.Secret = getEnv("JWT_SECRET", "development-secret")
	config.JWT.TTL = getDurationEnv("JWT_TTL", 24*time.Hour)

	// Gemini
	config.Gemini.APIKey = getEnv("GEMINI_API_KEY", "")
	config.Gemini.TextModel = getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash")
	config.Gemini.ImageModel = getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image-preview")
	config.Gemini.EditModel = getEnv("GEMINI_EDIT_MODEL", "gemini-2.5-flash-image-preview")

	// Image hosting
	config.ImageHost.APIKey = getEnv("IMAGE_HOST_API_KEY", "")
	config.ImageHost.Endpoint = getEnv("IMAGE_HOST_ENDPOINT", "")

	// Stripe
	config.Stripe.PublishableKey = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	config.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")
	config.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")

	// Upload
	maxSize := getEnv("UPLOAD_MAX_SIZE", "10485760") // 10MB default
	if size, err := strconv.ParseInt(maxSize, 10, 64); err == nil {
		config.Upload.MaxSize = size
	} else {
		config.Upload.MaxSize = 10485760
	}
	config.Upload.Dir = getEnv("UPLOAD_DIR", "./uploads")

	// Admin
	config.Admin.Email = getEnv("ADMIN_EMAIL", "admin@dr.business")
	config.Admin.Password = getEnv("ADMIN_PASSWORD", "")

	// Pipeline
	config.Pipeline.ImageDelay = getDurationEnv("IMAGE_PIPELINE_DELAY", time.Second)

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
