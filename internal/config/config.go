package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver      string        `mapstructure:"db_driver" validate:"required,oneof=mysql postgres sqlite"`
	DBHost        string        `mapstructure:"db_host"`
	DBPort        string        `mapstructure:"db_port"`
	DBUser        string        `mapstructure:"db_user"`
	DBPassword    string        `mapstructure:"db_password"`
	DBName        string        `mapstructure:"db_name"`
	DBPath        string        `mapstructure:"db_path" validate:"required_if=DBDriver sqlite"`
	RedisHost     string        `mapstructure:"redis_host"`
	RedisPort     string        `mapstructure:"redis_port"`
	SessionSecret string        `mapstructure:"session_secret" validate:"required"`
	GinMode       string        `mapstructure:"gin_mode" validate:"oneof=debug release test"`
	JWTSecret     string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	JWTExpiresIn  time.Duration `mapstructure:"jwt_expires_in" validate:"gt=0"`
	AdminKey      string        `mapstructure:"admin_key"`
	LogLevel      string        `mapstructure:"log_level"`
	Port          int           `mapstructure:"port" validate:"gt=0,lt=65536"`
}

var defaults = map[string]any{
	"db_driver":      "mysql",
	"db_host":        "localhost",
	"db_port":        "3306",
	"db_user":        "taskuser",
	"db_password":    "taskpassword",
	"db_name":        "task_management",
	"db_path":        "task_management.db",
	"redis_host":     "",
	"redis_port":     "6379",
	"session_secret": "default-secret-key-change-me",
	"gin_mode":       "debug",
	"jwt_secret":     "default-jwt-secret-key-change-me-please",
	"jwt_expires_in": "24h",
	"admin_key":      "",
	"log_level":      "info",
	"port":           8080,
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	case "sqlite":
		return c.DBPath
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
}

// RedisAddr returns host:port of the session store, or "" when sessions are
// kept in signed cookies.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}
