package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds everything read from the environment at boot.
// Values are read once in Load; handlers receive them by reference.
type Config struct {
	Port      string
	AdminKey  string
	JWTSecret string

	// Database connection: DatabaseURL wins when set, otherwise the
	// discrete DB_* parts are assembled into a DSN.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Delivery pricing. Fee is waived for subtotals at or above
	// FreeDeliveryOver (zero threshold disables the waiver).
	DeliveryFee      decimal.Decimal
	FreeDeliveryOver decimal.Decimal

	// How long an untouched cart session survives before the sweeper
	// drops it.
	CartTTL time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		AdminKey:         os.Getenv("ADMIN_API_KEY"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DeliveryFee:      getDecimal("DELIVERY_FEE", "30"),
		FreeDeliveryOver: getDecimal("FREE_DELIVERY_OVER", "0"),
		CartTTL:          getDuration("CART_TTL", 24*time.Hour),
	}

	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET not set; guest session tokens will not verify across restarts")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDecimal(key, fallback string) decimal.Decimal {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %s", key, raw, fallback)
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if hours, err := strconv.Atoi(raw); err == nil {
		return time.Duration(hours) * time.Hour
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	log.Printf("⚠️ Invalid %s=%q, using %s", key, raw, fallback)
	return fallback
}
