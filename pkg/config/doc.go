// Package config loads typed configuration from environment variables with
// github.com/caarlos0/env/v11, after reading an optional .env file with
// github.com/joho/godotenv.
//
// Every package that needs settings exposes a Config struct with env tags
// (ALERTS_*, REDIS_*, COOKIE_* and so on); the binary loads each one:
//
//	var sessionCfg session.Config
//	var httpCfg alertshttp.Config
//	if err := errors.Join(config.Load(&sessionCfg), config.Load(&httpCfg)); err != nil {
//	    return err
//	}
//
// Parsed values are cached per type. Tests that change the environment call
// Reset between loads.
package config
