package utils

import "os"

type ClientConfig struct {
	BaseURL   string
	TokenPath string
}

const defaultBaseURL = "http://localhost:8082/api/v1"

// LoadClientConfig reads the client settings from the environment,
// falling back to local dev defaults. Flag values override these at
// the CLI edge.
func LoadClientConfig() ClientConfig {
	base := os.Getenv("SHOPKART_API")
	if base == "" {
		base = defaultBaseURL
	}

	tokenPath := os.Getenv("SHOPKART_TOKEN_PATH")

	return ClientConfig{
		BaseURL:   base,
		TokenPath: tokenPath,
	}
}
