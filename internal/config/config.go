package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	JWT      JWTConfig
	Log      LogConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
	RateLimit      int `mapstructure:"rateLimit"`
	RateBurst      int `mapstructure:"rateBurst"`
}

type DatabaseConfig struct {
	Host                   string `mapstructure:"host" envconfig:"DB_HOST"`
	Port                   int    `mapstructure:"port" envconfig:"DB_PORT"`
	User                   string `mapstructure:"user" envconfig:"DB_USER"`
	Password               string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name                   string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode                string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
	MaxOpenConns           int    `mapstructure:"maxOpenConns" envconfig:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns           int    `mapstructure:"maxIdleConns" envconfig:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetimeMinutes int    `mapstructure:"connMaxLifetimeMinutes" envconfig:"DB_CONN_MAX_LIFETIME_MINUTES"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url" envconfig:"REDIS_URL"`
	Enabled bool   `mapstructure:"enabled" envconfig:"REDIS_ENABLED"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	User     string `mapstructure:"user" envconfig:"SMTP_USER"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"SMTP_FROM"`
	Enabled  bool   `mapstructure:"enabled" envconfig:"SMTP_ENABLED"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret" envconfig:"JWT_SECRET"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" envconfig:"LOG_LEVEL"`
	Pretty bool   `mapstructure:"pretty" envconfig:"LOG_PRETTY"`
}

type BookingConfig struct {
	// DefaultStepMinutes is the slot grid step for accounts that have
	// not configured one.
	DefaultStepMinutes int `mapstructure:"defaultStepMinutes"`
	// SettingsCacheSeconds bounds how stale a cached account's step
	// interval and timezone may be.
	SettingsCacheSeconds int `mapstructure:"settingsCacheSeconds"`
}

// LoadConfig reads the yaml config file, then lets process environment
// variables override the deploy-sensitive fields.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config.Database); err != nil {
		return nil, fmt.Errorf("failed to process database env: %w", err)
	}
	if err := envconfig.Process("", &config.Redis); err != nil {
		return nil, fmt.Errorf("failed to process redis env: %w", err)
	}
	if err := envconfig.Process("", &config.SMTP); err != nil {
		return nil, fmt.Errorf("failed to process smtp env: %w", err)
	}
	if err := envconfig.Process("", &config.JWT); err != nil {
		return nil, fmt.Errorf("failed to process jwt env: %w", err)
	}
	if err := envconfig.Process("", &config.Log); err != nil {
		return nil, fmt.Errorf("failed to process log env: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("server.rateLimit", 100)
	viper.SetDefault("server.rateBurst", 200)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.maxOpenConns", 25)
	viper.SetDefault("database.maxIdleConns", 5)
	viper.SetDefault("database.connMaxLifetimeMinutes", 30)
	viper.SetDefault("booking.defaultStepMinutes", 30)
	viper.SetDefault("booking.settingsCacheSeconds", 60)
	viper.SetDefault("log.level", "info")
}
