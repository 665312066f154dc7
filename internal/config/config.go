package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort string `envconfig:"APP_PORT" default:"8080"`
	DB       DBConfig
	JWT      JWTConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Limits   RateLimitConfig
	Risk     RiskConfig

	// Umbral para el evento Kafka de remesa grande, en DOP.
	LargeRemittanceThresholdDOP decimal.Decimal `envconfig:"LARGE_REMITTANCE_THRESHOLD_DOP" default:"100000"`
}

type DBConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"     required:"true"`
	Port     string `envconfig:"POSTGRES_PORT"     required:"true"`
	User     string `envconfig:"POSTGRES_USER"     required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName   string `envconfig:"POSTGRES_DB"       required:"true"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE"  default:"disable"`
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

type KafkaConfig struct {
	Brokers         []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	RiskTopic       string   `envconfig:"KAFKA_RISK_TOPIC" default:"suspicious-activity"`
	RemittanceTopic string   `envconfig:"KAFKA_REMITTANCE_TOPIC" default:"large-remittances"`
	Enabled         bool     `envconfig:"KAFKA_ENABLED" default:"true"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
}

// RateLimitConfig ventanas y máximos por operación expuesta.
type RateLimitConfig struct {
	QuoteWindow time.Duration `envconfig:"RATELIMIT_QUOTE_WINDOW" default:"1m"`
	QuoteMax    int           `envconfig:"RATELIMIT_QUOTE_MAX" default:"30"`

	CreateWindow time.Duration `envconfig:"RATELIMIT_CREATE_WINDOW" default:"1m"`
	CreateMax    int           `envconfig:"RATELIMIT_CREATE_MAX" default:"10"`

	ConfirmWindow time.Duration `envconfig:"RATELIMIT_CONFIRM_WINDOW" default:"1m"`
	ConfirmMax    int           `envconfig:"RATELIMIT_CONFIRM_MAX" default:"15"`

	FraudWindow time.Duration `envconfig:"RATELIMIT_FRAUD_WINDOW" default:"1m"`
	FraudMax    int           `envconfig:"RATELIMIT_FRAUD_MAX" default:"20"`
}

type RiskConfig struct {
	MaxDailyTxPerSender     int             `envconfig:"RISK_MAX_DAILY_TX_PER_SENDER" default:"10"`
	MaxDailyAmountDOP       decimal.Decimal `envconfig:"RISK_MAX_DAILY_AMOUNT_DOP" default:"250000"`
	MaxMonthlyAmountDOP     decimal.Decimal `envconfig:"RISK_MAX_MONTHLY_AMOUNT_DOP" default:"1000000"`
	MaxTxPerHourPerSender   int             `envconfig:"RISK_MAX_TX_PER_HOUR_PER_SENDER" default:"4"`
	MinSpacing              time.Duration   `envconfig:"RISK_MIN_SPACING" default:"2m"`
	MaxPairTxPerDay         int             `envconfig:"RISK_MAX_PAIR_TX_PER_DAY" default:"2"`
	RoundAmountThresholdDOP decimal.Decimal `envconfig:"RISK_ROUND_AMOUNT_THRESHOLD_DOP" default:"100000"`
	MaxTxPerHourPerIP       int             `envconfig:"RISK_MAX_TX_PER_HOUR_PER_IP" default:"8"`
}

func NewConfig() (*Config, error) {
	envFile := "config.env"

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("advertencia: no se pudo cargar %s, se usan solo variables de entorno del sistema: %v", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error al parsear la configuración: %w", err)
	}

	return &cfg, nil
}

func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (d *DBConfig) MigrationURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}
