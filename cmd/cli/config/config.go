package config

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the Authgate API.
// It can be overridden with the AUTHGATE_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("AUTHGATE_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// tokenPath returns the path of the stored token file (~/.authgate/token).
func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".authgate", "token"), nil
}

// SaveToken stores the access token under the user's home directory with
// owner-only permissions.
func SaveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

// LoadToken reads the stored access token. Returns an empty string if no
// token has been saved yet.
func LoadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
