package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carehub/carehub/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment  DeploymentConfig  `validate:"required"`
	Logging     LoggingConfig     `validate:"required"`
	Postgres    PostgresConfig    `validate:"required"`
	Cache       CacheConfig       `validate:"required"`
	Concurrency ConcurrencyConfig `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled bool
}

// ConcurrencyConfig tunes the optimistic-concurrency check on updates.
// VersionGranularity is the truncation applied to both the caller-supplied
// version token and the stored update timestamp before they are compared, to
// tolerate serialization precision loss between client and store.
type ConcurrencyConfig struct {
	VersionGranularity time.Duration `validate:"min=0"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/carehub")

	v.SetEnvPrefix("CAREHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("cache.enabled", true)
	v.SetDefault("concurrency.versiongranularity", time.Second)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment:  DeploymentConfig{Mode: types.ModeLocal},
		Logging:     LoggingConfig{Level: types.LogLevelDebug},
		Cache:       CacheConfig{Enabled: true},
		Concurrency: ConcurrencyConfig{VersionGranularity: time.Second},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User, c.Password, c.DBName, c.Host, c.Port, c.SSLMode,
	)
}
