package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fvr-cli/fvr/internal/atomicfile"
)

// Credentials holds the saved Favro account credentials. The file is
// written with mode 0600 since the token grants full API access.
type Credentials struct {
	Email string `toml:"email"`
	Token string `toml:"token"`
}

// CredentialsPath returns the credentials.toml path.
func CredentialsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.toml"), nil
}

// LoadCredentials loads saved credentials. Returns nil (and no error) when
// the user has never logged in.
func LoadCredentials(path string) (*Credentials, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var creds Credentials
	if _, err := toml.DecodeFile(path, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials %s: %w", path, err)
	}
	creds.Email = strings.TrimSpace(creds.Email)
	creds.Token = strings.TrimSpace(creds.Token)
	if creds.Email == "" || creds.Token == "" {
		return nil, nil
	}
	return &creds, nil
}

// SaveCredentials writes credentials atomically with owner-only permissions.
func SaveCredentials(path string, creds *Credentials) error {
	if creds == nil || creds.Email == "" || creds.Token == "" {
		return fmt.Errorf("email and token are required")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(creds); err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write credentials %s: %w", path, err)
	}
	return nil
}

// ClearCredentials removes the saved credentials file. Removing a file that
// does not exist is not an error.
func ClearCredentials(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials %s: %w", path, err)
	}
	return nil
}
