package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func (c *Config) validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	return c.validateTrigger()
}

func (c *Config) validateDatabase() error {
	if c.DatabaseURL.Value() == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	dbURL, err := url.Parse(c.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}

	if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL scheme must be postgres:// or postgresql://")
	}

	if dbURL.Hostname() == "" {
		return fmt.Errorf("DATABASE_URL must include a host")
	}

	dbHost := dbURL.Hostname()
	if dbHost != "localhost" && dbHost != "127.0.0.1" && dbHost != "::1" {
		sslmode := dbURL.Query().Get("sslmode")
		if sslmode == "disable" {
			return fmt.Errorf("DATABASE_URL sslmode=disable is not allowed for non-local host %q", dbHost)
		}
	}

	return nil
}

func (c *Config) validateNetwork() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	// Allow loopback addresses for local deployments and 0.0.0.0/:: for
	// containerized deployments where the network boundary is enforced
	// externally.
	validHosts := map[string]bool{
		"127.0.0.1": true,
		"::1":       true,
		"localhost": true,
		"0.0.0.0":   true,
		"::":        true,
	}
	if !validHosts[c.ListenHost] {
		return fmt.Errorf("LISTEN_HOST must be a loopback address or 0.0.0.0/:: for containers (got %q)", c.ListenHost)
	}

	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain wildcard '*'")
		}
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}

// validateTrigger checks that the storage notification listener is either
// fully configured or fully disabled. A subscription without a project (or
// the reverse) is a deployment mistake, not a supported half-state.
func (c *Config) validateTrigger() error {
	if c.ImportPolicy != "overwrite" && c.ImportPolicy != "ignore" {
		return fmt.Errorf("IMPORT_POLICY must be \"overwrite\" or \"ignore\" (got %q)", c.ImportPolicy)
	}

	if c.BatchSubscription == "" {
		return nil
	}

	if c.GCPProject == "" {
		return fmt.Errorf("GCP_PROJECT is required when BATCH_SUBSCRIPTION is set")
	}

	if c.BatchBucket == "" {
		return fmt.Errorf("BATCH_BUCKET is required when BATCH_SUBSCRIPTION is set")
	}

	return nil
}
