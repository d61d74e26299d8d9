package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Database   Database   `yaml:"database"`
	Media      Media      `yaml:"media"`
	S3         S3         `yaml:"s3"`
	Kafka      Kafka      `yaml:"kafka"`
	Watermark  Watermark  `yaml:"watermark"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Database struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env-default:"photomarketplace"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

// Media controls where original and watermarked files live. Backend is
// either "local" (files under Root, served from BaseURL) or "s3".
type Media struct {
	Backend     string        `yaml:"backend" env-default:"local"`
	Root        string        `yaml:"root" env-default:"./media"`
	BaseURL     string        `yaml:"base_url" env-default:"/media"`
	ReadTimeout time.Duration `yaml:"read_timeout" env-default:"10s"`
}

type S3 struct {
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Bucket          string `yaml:"bucket" env:"S3_BUCKET"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	PublicURL       string `yaml:"public_url" env:"S3_PUBLIC_URL"`
}

type Kafka struct {
	Brokers        []string `yaml:"brokers" env-default:"localhost:9092"`
	EventsTopic    string   `yaml:"events_topic" env-default:"photo-events"`
	ReprocessTopic string   `yaml:"reprocess_topic" env-default:"photo-reprocess"`
	GroupID        string   `yaml:"group_id" env-default:"photo-marketplace"`
}

type Watermark struct {
	FontPath string `yaml:"font_path" env:"WATERMARK_FONT_PATH"`
	Quality  int    `yaml:"quality" env-default:"70"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
