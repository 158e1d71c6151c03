package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. TW_SERVER_PORT
const EnvPrefix = "TW"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// envOverrides maps environment variables onto config keys. They are applied
// explicitly because AutomaticEnv cannot see camelCase keys.
var envOverrides = map[string]string{
	"TW_SERVER_HOST":         "server.host",
	"TW_SERVER_PORT":         "server.port",
	"TW_STORE_DRIVER":        "store.driver",
	"TW_STORE_NAMESPACE":     "store.namespace",
	"TW_DB_HOST":             "database.host",
	"TW_DB_PORT":             "database.port",
	"TW_DB_USERNAME":         "database.username",
	"TW_DB_PASSWORD":         "database.password",
	"TW_DB_NAME":             "database.database",
	"TW_DB_SSL_MODE":         "database.sslMode",
	"TW_REDIS_URL":           "redis.url",
	"TW_S3_BUCKET":           "s3.bucket",
	"TW_S3_REGION":           "s3.region",
	"TW_S3_ENDPOINT":         "s3.endpoint",
	"TW_S3_ACCESS_KEY":       "s3.accessKey",
	"TW_S3_SECRET_KEY":       "s3.secretKey",
	"TW_LOGGER_LEVEL":        "logger.level",
	"TW_AUTH_JWT_SECRET":     "auth.jwtSecret",
	"TW_AUTH_ADMIN_PASSWORD": "auth.adminPassword",
	"TW_FEED_TIMEZONE":       "feed.timezone",
	"TW_ADVICE_API_KEY":      "advice.apiKey",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	return LoadConfigWithPaths(ConfigPaths)
}

// LoadConfigWithPaths loads configs/<env>.yaml from the first matching path
func LoadConfigWithPaths(paths []string) (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found in DotEnvPaths
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.corsOrigins", []string{"*"})

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.namespace", "ff")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.prefix", "league/")

	v.SetDefault("logger.level", "info")

	v.SetDefault("auth.tokenTTL", 1440) // minutes
	v.SetDefault("auth.minPasswordLength", 6)
	v.SetDefault("auth.adminName", "Admin")

	v.SetDefault("wallet.minDeposit", 10)
	v.SetDefault("wallet.maxDeposit", 100000)
	v.SetDefault("wallet.minWithdraw", 100)
	v.SetDefault("wallet.maxWithdraw", 1000)
	v.SetDefault("wallet.payoutTargetLength", 11)

	v.SetDefault("feed.enabled", true)
	v.SetDefault("feed.timezone", "Asia/Dhaka")
	v.SetDefault("feed.dailyAt", "06:00")

	v.SetDefault("advice.enabled", false)
	v.SetDefault("advice.endpoint", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("advice.model", "gemini-2.5-flash")
	v.SetDefault("advice.timeout", 8)   // seconds
	v.SetDefault("advice.cacheTTL", 30) // minutes

	v.SetDefault("concurrency.queueSize", 100)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// getEnvironment determines the environment from TW_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides gives environment variables priority over file values
func processEnvOverrides(v *viper.Viper) {
	for name, key := range envOverrides {
		if value := os.Getenv(name); value != "" {
			v.Set(key, value)
		}
	}

	if mobiles := os.Getenv("TW_AUTH_ADMIN_MOBILES"); mobiles != "" {
		v.Set("auth.adminMobiles", splitList(mobiles))
	}
	if origins := os.Getenv("TW_SERVER_CORS_ORIGINS"); origins != "" {
		v.Set("server.corsOrigins", splitList(origins))
	}
	// The key name used by the text generation SDKs
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" && v.GetString("advice.apiKey") == "" {
		v.Set("advice.apiKey", apiKey)
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// processDurations converts the raw second and minute counts into durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Auth.TokenTTL = time.Duration(config.Auth.TokenTTL) * time.Minute

	config.Advice.Timeout = time.Duration(config.Advice.Timeout) * time.Second
	config.Advice.CacheTTL = time.Duration(config.Advice.CacheTTL) * time.Minute
}
