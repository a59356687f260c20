package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"schemesathi/internal/common/config"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/models"
)

// SessionVerifier resolves a bearer token to a session.
// Invalid or expired tokens return NOT_AUTHENTICATED; provider outages return AUTH_PROVIDER_UNAVAILABLE.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*models.Session, error)
}

// NewVerifier builds the verifier selected by auth.mode.
func NewVerifier(cfg config.AuthConfig) (SessionVerifier, error) {
	switch cfg.Mode {
	case "jwt":
		return NewJWTVerifier(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	case "keycloak":
		return NewKeycloakClient(cfg.Keycloak.URL, cfg.Keycloak.Realm,
			cfg.Keycloak.ClientID, cfg.Keycloak.ClientSecret, 10*time.Second), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", errors.NewNotAuthenticatedError("missing or malformed Authorization header")
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", errors.NewNotAuthenticatedError("empty bearer token")
	}
	return token, nil
}
