package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Database struct {
	Host     string `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port     string `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User     string `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password string `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name     string `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode  string `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`

	MaxOpenConns    int           `yaml:"PG_MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"PG_MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"PG_CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	ProductTTL time.Duration `yaml:"PRODUCT_TTL" env:"CACHE_PRODUCT_TTL" env-default:"5m"`
	DefaultTTL time.Duration `yaml:"DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"1m"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type Stripe struct {
	APIKey        string `yaml:"STRIPE_API_KEY" env:"STRIPE_API_KEY" env-default:""`
	WebhookSecret string `yaml:"STRIPE_WEBHOOK_SECRET" env:"STRIPE_WEBHOOK_SECRET" env-default:""`
}

type Swish struct {
	APIURL      string        `yaml:"SWISH_API_URL" env:"SWISH_API_URL" env-default:"https://cpc.getswish.net/swish-cpcapi/api/v2/paymentrequests/"`
	PayeeAlias  string        `yaml:"SWISH_PAYEE_ALIAS" env:"SWISH_PAYEE_ALIAS" env-default:""`
	CallbackURL string        `yaml:"SWISH_CALLBACK_URL" env:"SWISH_CALLBACK_URL" env-default:""`
	Timeout     time.Duration `yaml:"SWISH_TIMEOUT" env:"SWISH_TIMEOUT" env-default:"10s"`
}

type SumUp struct {
	APIURL       string        `yaml:"SUMUP_API_URL" env:"SUMUP_API_URL" env-default:"https://api.sumup.com"`
	ClientID     string        `yaml:"SUMUP_CLIENT_ID" env:"SUMUP_CLIENT_ID" env-default:""`
	ClientSecret string        `yaml:"SUMUP_CLIENT_SECRET" env:"SUMUP_CLIENT_SECRET" env-default:""`
	MerchantCode string        `yaml:"SUMUP_MERCHANT_CODE" env:"SUMUP_MERCHANT_CODE" env-default:""`
	PayToEmail   string        `yaml:"SUMUP_PAY_TO_EMAIL" env:"SUMUP_PAY_TO_EMAIL" env-default:""`
	RedirectURL  string        `yaml:"SUMUP_REDIRECT_URL" env:"SUMUP_REDIRECT_URL" env-default:""`
	Timeout      time.Duration `yaml:"SUMUP_TIMEOUT" env:"SUMUP_TIMEOUT" env-default:"10s"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@mdsweden.example"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"MD Sweden"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type Checkout struct {
	Currency string `yaml:"CURRENCY" env:"CHECKOUT_CURRENCY" env-default:"sek"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Cache        CacheConfig  `yaml:"cache"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Stripe       Stripe       `yaml:"stripe"`
	Swish        Swish        `yaml:"swish"`
	SumUp        SumUp        `yaml:"sumup"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Security     Security     `yaml:"security"`
	Checkout     Checkout     `yaml:"checkout"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
