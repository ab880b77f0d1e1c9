package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every field the server cannot run without
// is present.
func ValidateConfig(cfg *Config) error {
	required := map[string]string{
		"ServerPort": cfg.ServerPort,
		"DBHost":     cfg.DBHost,
		"DBPort":     cfg.DBPort,
		"DBUser":     cfg.DBUser,
		"DBName":     cfg.DBName,
		"JWTSecret":  cfg.JWTSecret,
	}

	var missing []string
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return ValidationError{
			Field:   strings.Join(missing, ", "),
			Message: "required configuration missing",
		}
	}

	if len(cfg.JWTSecret) < 16 && IsProduction() {
		return ValidationError{Field: "JWTSecret", Message: "must be at least 16 characters in production"}
	}

	return nil
}
