package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	JWTSecret  string
	JWTExpiry  string

	// Remote commerce API that issues payment links. Resolved once at
	// startup, never re-read per request.
	CommerceAPIURL     string
	CommerceAPITimeout time.Duration

	// How long the checkout progress indicator plays before the redirect
	// to the payment link is issued.
	CheckoutRedirectDelay time.Duration

	// Pricing policy.
	ShippingFee     float64
	FreeShippingMin float64
	TaxRate         float64

	CurrencySymbol string

	UploadDir     string
	MaxUploadSize int64
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	AppConfig = &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("APP_PORT", getEnv("PORT", "8082")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "shopfront"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		JWTExpiry:  getEnv("JWT_EXPIRY", "24h"),

		CommerceAPIURL:     getEnv("COMMERCE_API_URL", "http://localhost:9000"),
		CommerceAPITimeout: getEnvDuration("COMMERCE_API_TIMEOUT", 10*time.Second),

		CheckoutRedirectDelay: getEnvDuration("CHECKOUT_REDIRECT_DELAY", 1500*time.Millisecond),

		ShippingFee:     getEnvFloat("SHIPPING_FEE", 10),
		FreeShippingMin: getEnvFloat("FREE_SHIPPING_MIN", 100),
		TaxRate:         getEnvFloat("TAX_RATE", 0.08),

		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: maxUploadSize,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
	log.Printf("Commerce API: %s", AppConfig.CommerceAPIURL)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
