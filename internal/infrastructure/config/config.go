package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Store       StoreConfig       `mapstructure:"store"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	S3          S3Config          `mapstructure:"s3"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Wallet      WalletConfig      `mapstructure:"wallet"`
	Feed        FeedConfig        `mapstructure:"feed"`
	Advice      AdviceConfig      `mapstructure:"advice"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	CORSOrigins       []string      `mapstructure:"corsOrigins"`
}

// StoreConfig selects the key-value backend holding the collections
type StoreConfig struct {
	Driver    string `mapstructure:"driver"` // memory, redis, postgres or s3
	Namespace string `mapstructure:"namespace"`
}

// DatabaseConfig contains database connection settings for the postgres store
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// RedisConfig contains the redis store connection
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// S3Config contains the object store settings
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Prefix    string `mapstructure:"prefix"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig contains credential and token settings
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwtSecret"`
	TokenTTL          time.Duration `mapstructure:"tokenTTL"` // minutes
	MinPasswordLength int           `mapstructure:"minPasswordLength"`
	AdminMobiles      []string      `mapstructure:"adminMobiles"`
	AdminPassword     string        `mapstructure:"adminPassword"`
	AdminName         string        `mapstructure:"adminName"`
}

// WalletConfig contains deposit and withdraw limits in whole currency units
type WalletConfig struct {
	MinDeposit         int64 `mapstructure:"minDeposit"`
	MaxDeposit         int64 `mapstructure:"maxDeposit"`
	MinWithdraw        int64 `mapstructure:"minWithdraw"`
	MaxWithdraw        int64 `mapstructure:"maxWithdraw"`
	PayoutTargetLength int   `mapstructure:"payoutTargetLength"`
}

// FeedConfig contains the daily match feed settings
type FeedConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Timezone string `mapstructure:"timezone"`
	DailyAt  string `mapstructure:"dailyAt"` // hh:mm in Timezone
}

// AdviceConfig contains the text generation endpoint settings
type AdviceConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"apiKey"`
	Timeout  time.Duration `mapstructure:"timeout"`  // seconds
	CacheTTL time.Duration `mapstructure:"cacheTTL"` // minutes
}

// ConcurrencyConfig contains the per-key sequencer settings
type ConcurrencyConfig struct {
	QueueSize int `mapstructure:"queueSize"`
}

// MetricsConfig contains the prometheus endpoint settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
