package config

import (
	"fmt"
	"os"
)

type AuthConfig struct {
	APIToken string
}

// GetAuthConfig fails when no token is configured so the service can never
// start open.
func GetAuthConfig() (*AuthConfig, error) {
	apiToken := os.Getenv("API_TOKEN")
	if apiToken == "" {
		return nil, fmt.Errorf("API_TOKEN must be set")
	}

	return &AuthConfig{
		APIToken: apiToken,
	}, nil
}
