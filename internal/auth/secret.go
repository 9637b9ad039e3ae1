package auth

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
)

// secretBytes is the size of a freshly generated signing secret.
const secretBytes = 24

// LoadOrCreateSecret reads the session signing secret from path. If the file
// does not exist, it creates the containing directory, generates a random
// secret, persists it with owner-only permissions, and returns it. A new
// secret invalidates every outstanding session, which is acceptable; the
// process must not serve requests without one, so any failure here is fatal
// to the caller.
func LoadOrCreateSecret(path string) ([]byte, error) {
	secret, err := os.ReadFile(path)
	if err == nil {
		if len(secret) == 0 {
			return nil, fmt.Errorf("secret key file %s is empty", path)
		}
		return secret, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read secret key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create secret key directory: %w", err)
	}
	secret = make([]byte, secretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate secret key: %w", err)
	}
	if err := os.WriteFile(path, secret, 0600); err != nil {
		return nil, fmt.Errorf("failed to write secret key: %w", err)
	}
	return secret, nil
}
