package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

var dailyAtPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var storeDrivers = []string{"memory", "redis", "postgres", "s3"}

// Validate ensures all required configuration values are present and
// returns warnings for settings that are unsafe in production
func (c *Config) Validate() ([]string, error) {
	var missingConfigs []string

	if c.Environment != Development && c.Environment != Production && c.Environment != Test {
		return nil, fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			c.Environment, Development, Production, Test)
	}

	if c.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if c.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}
	if c.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}
	if c.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or TW_AUTH_JWT_SECRET environment variable)")
	}

	if !slices.Contains(storeDrivers, c.Store.Driver) {
		return nil, fmt.Errorf("invalid store driver: %s, must be one of: %s", c.Store.Driver, strings.Join(storeDrivers, ", "))
	}
	switch c.Store.Driver {
	case "postgres":
		if c.Database.Host == "" {
			missingConfigs = append(missingConfigs, "database.host (or TW_DB_HOST environment variable)")
		}
		if c.Database.Username == "" {
			missingConfigs = append(missingConfigs, "database.username (or TW_DB_USERNAME environment variable)")
		}
		if c.Database.Database == "" {
			missingConfigs = append(missingConfigs, "database.database (or TW_DB_NAME environment variable)")
		}
	case "redis":
		if c.Redis.URL == "" {
			missingConfigs = append(missingConfigs, "redis.url (or TW_REDIS_URL environment variable)")
		}
	case "s3":
		if c.S3.Bucket == "" {
			missingConfigs = append(missingConfigs, "s3.bucket (or TW_S3_BUCKET environment variable)")
		}
	}

	if c.Feed.Enabled && !dailyAtPattern.MatchString(c.Feed.DailyAt) {
		return nil, fmt.Errorf("invalid feed.dailyAt value: %q, expected hh:mm", c.Feed.DailyAt)
	}
	if _, err := time.LoadLocation(c.Feed.Timezone); err != nil {
		return nil, fmt.Errorf("invalid feed.timezone value: %q: %w", c.Feed.Timezone, err)
	}

	if c.Wallet.MinWithdraw > c.Wallet.MaxWithdraw {
		return nil, fmt.Errorf("wallet.minWithdraw (%d) is above wallet.maxWithdraw (%d)", c.Wallet.MinWithdraw, c.Wallet.MaxWithdraw)
	}
	if c.Wallet.MaxDeposit > 0 && c.Wallet.MinDeposit > c.Wallet.MaxDeposit {
		return nil, fmt.Errorf("wallet.minDeposit (%d) is above wallet.maxDeposit (%d)", c.Wallet.MinDeposit, c.Wallet.MaxDeposit)
	}

	if c.Advice.Enabled && c.Advice.APIKey == "" {
		missingConfigs = append(missingConfigs, "advice.apiKey (or TW_ADVICE_API_KEY environment variable)")
	}

	if len(missingConfigs) > 0 {
		return nil, fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	var warnings []string
	if c.Environment == Production {
		if c.Store.Driver == "memory" {
			warnings = append(warnings, "store.driver memory loses every collection on restart")
		}
		if c.Store.Driver == "postgres" && !slices.Contains([]string{"require", "verify-ca", "verify-full"}, strings.ToLower(c.Database.SSLMode)) {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if len(c.Auth.JWTSecret) < 32 {
			warnings = append(warnings, "auth.jwtSecret should be at least 32 characters in production")
		}
		if c.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
	}
	return warnings, nil
}
