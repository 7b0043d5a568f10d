package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	AWSRegion          string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	AWSAccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	DynamoDBEndpoint   string `envconfig:"DYNAMODB_ENDPOINT"`
	ProductTableName   string `envconfig:"PRODUCT_TABLE_NAME" default:"products-table"`
	ProductSlugIndex   string `envconfig:"PRODUCT_SLUG_INDEX" default:"slug-index"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
	LocalMode          bool   `envconfig:"LOCAL_MODE" default:"true"` // in-memory store instead of DynamoDB

	// Admin routes reject every request while this is empty.
	AdminKey string `envconfig:"ADMIN_KEY"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"catalog-events"`

	TLSEnabled      bool   `envconfig:"TLS_ENABLED" default:"false"`
	SpireSocketPath string `envconfig:"SPIRE_SOCKET_PATH" default:"unix:///run/spire/sockets/agent.sock"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
