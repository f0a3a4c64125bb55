package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service   = "habits"
	resendKey = "resend-api-key"
)

var (
	// ErrNotFound is returned when no key is stored
	ErrNotFound = errors.New("resend API key not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetResendAPIKey reads the Resend API key saved by SetResendAPIKey.
func GetResendAPIKey() (string, error) {
	key, err := keyring.Get(service, resendKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return key, nil
}

func SetResendAPIKey(key string) error {
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if err := keyring.Set(service, resendKey, key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

func DeleteResendAPIKey() error {
	err := keyring.Delete(service, resendKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete API key from keyring: %w", err)
	}
	return nil
}

// ResolveResendAPIKey prefers an explicitly configured key and falls back
// to the keyring.
func ResolveResendAPIKey(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return GetResendAPIKey()
}
