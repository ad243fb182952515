package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	httpapi "github.com/tastehub/tastehub-manager/internal/api/http"
	"github.com/tastehub/tastehub-manager/internal/auth/jwt"
	"github.com/tastehub/tastehub-manager/internal/bucket"
	"github.com/tastehub/tastehub-manager/internal/ordercleanup"
	"github.com/tastehub/tastehub-manager/internal/payment/razorpay"
	"github.com/tastehub/tastehub-manager/internal/payment/stripe"
	"github.com/tastehub/tastehub-manager/internal/store"
	"github.com/tastehub/tastehub-manager/log"
)

// Config represents the global configuration for the service.
type Config struct {
	DB            store.Config        `mapstructure:"mysql"`
	Logger        log.Config          `mapstructure:"logger"`
	HTTP          httpapi.Config      `mapstructure:"http"`
	Auth          jwt.Config          `mapstructure:"auth"`
	Bucket        bucket.Config       `mapstructure:"bucket"`
	StripePayment stripe.Config       `mapstructure:"stripe_payment"`
	Razorpay      razorpay.Config     `mapstructure:"razorpay"`
	OrderCleanup  ordercleanup.Config `mapstructure:"order_cleanup"`
}

// LoadConfig loads the configuration from a file and/or environment
// variables. Environment variables take precedence over config file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/tastehub-manager")
		viper.AddConfigPath("/etc/tastehub-manager")
		// Config file is optional, env vars can carry the whole config.
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	return &config, nil
}

// bindEnvVars binds flat environment variable names to nested config keys.
func bindEnvVars() {
	// MySQL
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	viper.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	viper.BindEnv("http.rate_limit", "HTTP_RATE_LIMIT")
	viper.BindEnv("http.rate_period", "HTTP_RATE_PERIOD")

	// Auth
	viper.BindEnv("auth.secret", "AUTH_JWT_SECRET")
	viper.BindEnv("auth.token_ttl", "AUTH_TOKEN_TTL")

	// Bucket
	viper.BindEnv("bucket.s3_access_key", "BUCKET_S3_ACCESS_KEY")
	viper.BindEnv("bucket.s3_secret_access_key", "BUCKET_S3_SECRET_ACCESS_KEY")
	viper.BindEnv("bucket.s3_endpoint", "BUCKET_S3_ENDPOINT")
	viper.BindEnv("bucket.s3_bucket_name", "BUCKET_S3_BUCKET_NAME")
	viper.BindEnv("bucket.s3_bucket_location", "BUCKET_S3_BUCKET_LOCATION")
	viper.BindEnv("bucket.base_folder", "BUCKET_BASE_FOLDER")

	// Stripe Payment
	viper.BindEnv("stripe_payment.secret_key", "STRIPE_PAYMENT_SECRET_KEY")
	viper.BindEnv("stripe_payment.currency", "STRIPE_PAYMENT_CURRENCY")
	viper.BindEnv("stripe_payment.frontend_url", "STRIPE_PAYMENT_FRONTEND_URL")
	viper.BindEnv("stripe_payment.delivery_charge", "STRIPE_PAYMENT_DELIVERY_CHARGE")

	// Razorpay
	viper.BindEnv("razorpay.key_id", "RAZORPAY_KEY_ID")
	viper.BindEnv("razorpay.key_secret", "RAZORPAY_KEY_SECRET")

	// Order cleanup (abandoned checkouts)
	viper.BindEnv("order_cleanup.worker_interval", "ORDER_CLEANUP_WORKER_INTERVAL")
	viper.BindEnv("order_cleanup.unpaid_threshold", "ORDER_CLEANUP_UNPAID_THRESHOLD")
}
