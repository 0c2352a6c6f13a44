package config

import (
	"fmt"
	"strings"
)

// ValidateConfig rejects configurations that cannot possibly work. The
// development defaults always pass; production must carry real secrets.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server port is required")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		errors = append(errors, "database host, port and name are required")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT secret is required")
	}

	if IsProduction() {
		if cfg.JWTSecret == "your-secret-key" {
			errors = append(errors, "JWT_SECRET must be set explicitly in production")
		}
		if cfg.DBPassword == "postgres" {
			errors = append(errors, "DB_PASSWORD must be set explicitly in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}
