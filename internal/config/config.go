package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Search   SearchConfig   `json:"search"`
	Imaging  ImagingConfig  `json:"imaging"`
	Alerts   AlertsConfig   `json:"alerts"`
	Security SecurityConfig `json:"security"`
	Logging  LoggingConfig  `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	User           string        `json:"user"`
	Password       string        `json:"password"`
	DBName         string        `json:"db_name"`
	SSLMode        string        `json:"ssl_mode"`
	MaxConnections int           `json:"max_connections"`
	MaxIdleConns   int           `json:"max_idle_conns"`
	MaxLifetime    time.Duration `json:"max_lifetime"`
}

// SearchConfig configures the outbound search provider. Region and language
// default to the values the hosted app shipped with; both are plain
// pass-through parameters, nothing downstream depends on them.
type SearchConfig struct {
	BaseURL              string        `json:"base_url"`
	APIKey               string        `json:"api_key"`
	Region               string        `json:"region"`
	Language             string        `json:"language"`
	NewsResultCount      int           `json:"news_result_count"`
	PresenceResultCount  int           `json:"presence_result_count"`
	PresenceProfileLimit int           `json:"presence_profile_limit"`
	Timeout              time.Duration `json:"timeout"`
}

// ImagingConfig configures photo hosting for reverse-image checks
type ImagingConfig struct {
	Bucket        string `json:"bucket"`
	Region        string `json:"region"`
	PublicBaseURL string `json:"public_base_url"`
}

// AlertsConfig configures emergency alert dispatch channels
type AlertsConfig struct {
	SMSProvider      string `json:"sms_provider"` // twilio or sns
	TwilioAccountSID string `json:"twilio_account_sid"`
	TwilioAuthToken  string `json:"twilio_auth_token"`
	TwilioFromNumber string `json:"twilio_from_number"`
	SNSRegion        string `json:"sns_region"`
	EmailFrom        string `json:"email_from"`
	SESRegion        string `json:"ses_region"`
}

// SecurityConfig
type SecurityConfig struct {
	JWTSecret string        `json:"jwt_secret"`
	TokenTTL  time.Duration `json:"token_ttl"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    os.Getenv("USER"),
			DBName:  "homesafe",
			SSLMode: "disable",
		},
		Search: SearchConfig{
			BaseURL:              "https://serpapi.com",
			Region:               "uk",
			Language:             "en",
			NewsResultCount:      20,
			PresenceResultCount:  5,
			PresenceProfileLimit: 3,
			Timeout:              20 * time.Second,
		},
		Alerts: AlertsConfig{
			SMSProvider: "twilio",
		},
		Security: SecurityConfig{
			TokenTTL: 24 * time.Hour,
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if key := os.Getenv("SERPAPI_KEY"); key != "" {
		config.Search.APIKey = key
	}
	if region := os.Getenv("SEARCH_REGION"); region != "" {
		config.Search.Region = region
	}
	if lang := os.Getenv("SEARCH_LANGUAGE"); lang != "" {
		config.Search.Language = lang
	}
	if bucket := os.Getenv("PHOTO_BUCKET"); bucket != "" {
		config.Imaging.Bucket = bucket
	}
	if region := os.Getenv("PHOTO_BUCKET_REGION"); region != "" {
		config.Imaging.Region = region
	}
	if sid := os.Getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		config.Alerts.TwilioAccountSID = sid
	}
	if token := os.Getenv("TWILIO_AUTH_TOKEN"); token != "" {
		config.Alerts.TwilioAuthToken = token
	}
	if from := os.Getenv("TWILIO_PHONE_NUMBER"); from != "" {
		config.Alerts.TwilioFromNumber = from
	}
	if from := os.Getenv("ALERT_EMAIL_FROM"); from != "" {
		config.Alerts.EmailFrom = from
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Security.JWTSecret = secret
	}
}

// GetDatabaseURL returns the database connection string
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
