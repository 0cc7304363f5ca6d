package models

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	RecommendationLimit int                `mapstructure:"recommendation_limit"`
	CatalogFile         string             `mapstructure:"catalog_file"`
	SeedBatchSize       int                `mapstructure:"seed_batch_size"`
	SessionID           string             `mapstructure:"session_id"`
	Message             string             `mapstructure:"message"`
	PostgresEnabled     bool               `mapstructure:"postgres_enabled"`
	Database            DatabaseConfig     `mapstructure:"database"`
	ConnectTimeout      time.Duration      `mapstructure:"connect_timeout"`
	KafkaEnabled        bool               `mapstructure:"kafka_enabled"`
	KafkaBrokerList     string             `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs    int                `mapstructure:"session_timeout_ms"`
	OutputFormat        string             `mapstructure:"output_format"`
	OutputPath          string             `mapstructure:"output_path"`
	OutputFolder        string             `mapstructure:"output_folder"`
	OutputDestination   string             `mapstructure:"output_destination"`
	CloudStorage        CloudStorageConfig `mapstructure:"cloud_storage"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("recommendation_limit", DefaultRecommendationLimit)
	viper.SetDefault("seed_batch_size", DefaultSeedBatchSize)
	viper.SetDefault("output_destination", "local")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// LoadRawProducts reads a JSON catalog file of loosely typed product
// records, as exported by upstream catalog tooling.
func LoadRawProducts(filePath string) ([]map[string]interface{}, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog file: %w", err)
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing catalog file: %w", err)
	}
	return raw, nil
}

// NormalizeProduct converts a raw catalog record into a Product. Decoding
// is weakly typed so truthy values ("1", 1, true) normalize to booleans
// and numeric strings to numbers; missing numeric fields default to zero.
func NormalizeProduct(raw map[string]interface{}) (*Product, error) {
	var product Product
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &product,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating product decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("error normalizing product record: %w", err)
	}

	if product.ID == "" {
		return nil, fmt.Errorf("product record is missing product_id")
	}
	if product.Name == "" {
		return nil, fmt.Errorf("product %s is missing a name", product.ID)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("product %s has a negative price", product.ID)
	}

	return &product, nil
}
