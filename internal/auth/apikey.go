// Package auth provides the API key primitives behind /v1 authentication.
// Keys are random, prefixed tokens; only their bcrypt hash is kept in
// configuration (auth.api_key_hash). See internal/middleware/auth.go for the
// request-time check.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// KeyPrefix is prepended to generated keys so they are recognisable in logs and secret scanners
	KeyPrefix = "agp"

	// APIKeyLength is the length of the random part of the API key in bytes
	APIKeyLength = 32

	// DisplayPrefixLength is the number of characters safe to show or log
	DisplayPrefixLength = 10

	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 12
)

// GenerateAPIKey creates a new random API key with the given prefix.
// Returns: full key (to show once), bcrypt hash (to configure), display prefix.
func GenerateAPIKey(prefix string) (key string, hash string, displayPrefix string, err error) {
	randomBytes := make([]byte, APIKeyLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	fullKey := fmt.Sprintf("%s_%s", prefix, base64.RawURLEncoding.EncodeToString(randomBytes))

	hashBytes, err := HashAPIKey(fullKey, BcryptCost)
	if err != nil {
		return "", "", "", err
	}

	return fullKey, hashBytes, DisplayPrefix(fullKey), nil
}

// HashAPIKey returns the bcrypt hash of key at the given cost.
func HashAPIKey(key string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash API key: %w", err)
	}
	return string(hash), nil
}

// DisplayPrefix returns the first DisplayPrefixLength characters of key.
func DisplayPrefix(key string) string {
	if len(key) > DisplayPrefixLength {
		return key[:DisplayPrefixLength]
	}
	return key
}

// ValidateAPIKey checks if a provided key matches the stored hash
func ValidateAPIKey(providedKey, storedHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(providedKey))
	return err == nil
}

// ExtractAPIKeyFromHeader extracts the API key from an Authorization header
// Expected format: "Bearer agp_abc123xyz..."
func ExtractAPIKeyFromHeader(header string) (string, error) {
	if header == "" {
		return "", errors.New("authorization header is empty")
	}

	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	key := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if key == "" {
		return "", errors.New("API key is empty after Bearer prefix")
	}
	if strings.ContainsAny(key, " \t") {
		return "", errors.New("authorization header must be 'Bearer <key>'")
	}

	return key, nil
}
