// Package credentials keeps the catalog API key in the OS keyring.
package credentials

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "bookscan"
	apiKeyKey   = "catalog_api_key"
)

// ErrNoAPIKey is returned when no key has been stored.
var ErrNoAPIKey = errors.New("no catalog API key stored")

func StoreAPIKey(key string) error {
	if key == "" {
		return errors.New("API key must not be empty")
	}
	return keyring.Set(serviceName, apiKeyKey, key)
}

func GetAPIKey() (string, error) {
	value, err := keyring.Get(serviceName, apiKeyKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoAPIKey
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func DeleteAPIKey() error {
	err := keyring.Delete(serviceName, apiKeyKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNoAPIKey
	}
	return err
}

// Mask shows only the ends of key.
func Mask(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "…" + key[len(key)-4:]
}
