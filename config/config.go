package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal      = "local"
	EnvProduction = "production"

	TestModeReal = "real"
	TestModeTest = "test"
)

// Config is built once at startup and never modified afterwards.
type Config struct {
	AppEnv   string
	TestMode string
	Port     string

	DBHost     string
	DBPort     int
	DBName     string
	DBUsername string
	DBPassword string
	DBSSLMode  string

	AtSecret string
	RtSecret string

	// cookie domain and allowed origins depend on AppEnv
	Domain      string
	CORSOrigins []string

	RedisAddr     string
	RedisPassword string

	FirebaseCredentialsFile string
	StorageBucket           string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	AWSRegion string
}

// Load reads the .env file (when present) and the process environment.
func Load() (Config, error) {
	// a missing .env is fine in production, variables come from the environment
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return FromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvLocal)
	v.SetDefault("TEST_MODE", TestModeReal)
	v.SetDefault("PORT", "8000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "escapenote")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM", "no-reply@escape-note.com")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("STORAGE_BUCKET", "escapenote-images")
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppEnv:                  v.GetString("APP_ENV"),
		TestMode:                v.GetString("TEST_MODE"),
		Port:                    v.GetString("PORT"),
		DBHost:                  v.GetString("DB_HOST"),
		DBPort:                  v.GetInt("DB_PORT"),
		DBName:                  v.GetString("DB_NAME"),
		DBUsername:              v.GetString("DB_USERNAME"),
		DBPassword:              v.GetString("DB_PASSWORD"),
		DBSSLMode:               v.GetString("DB_SSLMODE"),
		AtSecret:                v.GetString("AT_SECRET"),
		RtSecret:                v.GetString("RT_SECRET"),
		RedisAddr:               v.GetString("REDIS_ADDR"),
		RedisPassword:           v.GetString("REDIS_PASSWORD"),
		FirebaseCredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),
		StorageBucket:           v.GetString("STORAGE_BUCKET"),
		SMTPHost:                v.GetString("SMTP_HOST"),
		SMTPPort:                v.GetInt("SMTP_PORT"),
		SMTPUsername:            v.GetString("SMTP_USERNAME"),
		SMTPPassword:            v.GetString("SMTP_PASSWORD"),
		MailFrom:                v.GetString("MAIL_FROM"),
		AWSRegion:               v.GetString("AWS_REGION"),
	}

	switch cfg.AppEnv {
	case EnvProduction:
		cfg.Domain = "escape-note.com"
		cfg.CORSOrigins = []string{"https://escape-note.com", "https://www.escape-note.com"}
	case EnvLocal:
		cfg.Domain = "localhost"
		cfg.CORSOrigins = []string{"http://localhost:3000", "https://escape-note.com", "https://www.escape-note.com"}
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q", cfg.AppEnv)
	}
	if extra := v.GetString("CORS_ORIGINS"); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	if cfg.TestMode != TestModeReal && cfg.TestMode != TestModeTest {
		return Config{}, fmt.Errorf("invalid TEST_MODE %q", cfg.TestMode)
	}
	if cfg.AtSecret == "" || cfg.RtSecret == "" {
		return Config{}, errors.New("AT_SECRET and RT_SECRET are required")
	}
	// without smtp, mails would only be logged
	if cfg.IsProduction() && cfg.SMTPHost == "" {
		return Config{}, errors.New("SMTP_HOST is required in production")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func (c Config) IsTestMode() bool {
	return c.TestMode == TestModeTest
}

// DSN returns the postgres connection string. Test mode uses a separate database.
func (c Config) DSN() string {
	dbName := c.DBName
	if c.IsTestMode() {
		dbName += "_test"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUsername, c.DBPassword, dbName, c.DBPort, c.DBSSLMode)
}
