package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this binary understands.
// Bump it together with .env.example so stale env files fail loudly.
const ExpectedEnvSchemaVersion = "1.0"

// CoreEnvVars must be set in every mode
var CoreEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
}

// DatabaseEnvVars must be set unless DEV_MODE runs on the memory store
var DatabaseEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// ValidateEnv checks the schema version and the presence of required
// variables. With devMode set the database block is skipped: the memory
// store needs no connection details.
func ValidateEnv(devMode bool) error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	required := CoreEnvVars
	if !devMode {
		required = append(append([]string{}, CoreEnvVars...), DatabaseEnvVars...)
	}

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv, then reports non-fatal
// problems worth a log line: placeholder secrets copied from .env.example
// and dev-mode persistence in a production environment.
func ValidateEnvWithWarnings(devMode bool) ([]string, error) {
	if err := ValidateEnv(devMode); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if devMode && os.Getenv("ENVIRONMENT") == "prod" {
		warnings = append(warnings, "DEV_MODE is enabled with ENVIRONMENT=prod - all state is in memory and will be lost on restart")
	}

	return warnings, nil
}
