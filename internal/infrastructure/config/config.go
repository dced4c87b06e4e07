package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Auth        AuthConfig       `mapstructure:"auth"`
	Token       TokenConfig      `mapstructure:"token"`
	Settlement  SettlementConfig `mapstructure:"settlement"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig contains settings for validating identity-provider tokens.
// This service only consumes the claims; it never issues credentials.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
}

// TokenConfig contains the token economy settings. Rate is the single
// currency-units-per-token constant shared by balance valuation and
// purchase pricing.
type TokenConfig struct {
	Rate int64 `mapstructure:"rate"`
}

// SettlementConfig drives the deferred settlement worker
type SettlementConfig struct {
	PollInterval      time.Duration `mapstructure:"pollInterval"`
	ConfirmationDelay time.Duration `mapstructure:"confirmationDelay"`
	BatchSize         int           `mapstructure:"batchSize"`
}
