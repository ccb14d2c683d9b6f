package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisHoldDB   int    `mapstructure:"REDIS_HOLD_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking window rules.
	MaxAdvanceBookingDays  int `mapstructure:"MAX_ADVANCE_BOOKING_DAYS"`
	MinAdvanceBookingHours int `mapstructure:"MIN_ADVANCE_BOOKING_HOURS"`

	// Pricing.
	TaxRateBPS      int64  `mapstructure:"TAX_RATE_BPS"`
	PlatformFee     int64  `mapstructure:"PLATFORM_FEE_MINOR"`
	DefaultCurrency string `mapstructure:"DEFAULT_CURRENCY"`

	// Payment gateway (order/callback gateway). Provider selects the
	// client implementation: "orders" or "stripe".
	GatewayProvider string `mapstructure:"GATEWAY_PROVIDER"`
	GatewayBaseURL  string `mapstructure:"GATEWAY_BASE_URL"`
	GatewayKeyID    string `mapstructure:"GATEWAY_KEY_ID"`
	GatewaySecret   string `mapstructure:"GATEWAY_SECRET"`

	// Stripe (card gateway).
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Kafka event stream.
	KafkaBrokers    []string `mapstructure:"KAFKA_BROKERS"`
	KafkaEventTopic string   `mapstructure:"KAFKA_EVENT_TOPIC"`
	KafkaGroupID    string   `mapstructure:"KAFKA_GROUP_ID"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_HOLD_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "wanderstay")
	viper.SetDefault("MAX_ADVANCE_BOOKING_DAYS", 365)
	viper.SetDefault("MIN_ADVANCE_BOOKING_HOURS", 2)
	viper.SetDefault("TAX_RATE_BPS", 1800)
	viper.SetDefault("PLATFORM_FEE_MINOR", 5000)
	viper.SetDefault("DEFAULT_CURRENCY", "INR")
	viper.SetDefault("GATEWAY_PROVIDER", "orders")
	viper.SetDefault("GATEWAY_BASE_URL", "https://api.gateway.test")
	viper.SetDefault("KAFKA_BROKERS", []string{"localhost:9092"})
	viper.SetDefault("KAFKA_EVENT_TOPIC", "wanderstay.booking.events")
	viper.SetDefault("KAFKA_GROUP_ID", "wanderstay-notifications")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
