package gateway

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	publishableKeyPrefix = "sb_publishable_"
	secretKeyPrefix      = "sb_secret_"
	serviceRole          = "service_role"
)

// CheckAPIKey rejects keys that grant privileged access to the backend.
//
// Opaque keys are recognised by prefix. Legacy keys are JWTs; they are
// decoded without verifying the signature (the client has no way to verify
// it) only to read the role claim. An empty key is accepted.
func CheckAPIKey(key string) error {
	switch {
	case key == "":
		return nil
	case strings.HasPrefix(key, secretKeyPrefix):
		return ErrPrivilegedKey
	case strings.HasPrefix(key, publishableKeyPrefix):
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	if role, _ := claims["role"].(string); role == serviceRole {
		return ErrPrivilegedKey
	}
	return nil
}
