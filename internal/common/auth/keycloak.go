package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"schemesathi/internal/common/errors"
	httpclient "schemesathi/internal/common/http"
	"schemesathi/internal/models"
)

// KeycloakClient verifies access tokens against a Keycloak realm.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	http         *httpclient.Client
}

// TokenInfo holds the information returned by the token introspection endpoint.
type TokenInfo struct {
	Active      bool   `json:"active"`
	Scope       string `json:"scope,omitempty"`
	ClientID    string `json:"client_id,omitempty"`
	Username    string `json:"username,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	Exp         int64  `json:"exp,omitempty"`
	Iat         int64  `json:"iat,omitempty"`
	Sub         string `json:"sub,omitempty"`
	Iss         string `json:"iss,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Name        string `json:"name,omitempty"`
}

func NewKeycloakClient(baseURL, realm, clientID, clientSecret string, timeout time.Duration) *KeycloakClient {
	return &KeycloakClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		realm:        realm,
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         httpclient.NewClient(timeout, httpclient.WithRetries(2, 200*time.Millisecond)),
	}
}

// ValidateToken introspects token and fails with NOT_AUTHENTICATED unless it is active.
func (k *KeycloakClient) ValidateToken(ctx context.Context, token string) (*TokenInfo, error) {
	introspectURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token/introspect", k.baseURL, k.realm)

	data := url.Values{}
	data.Set("token", token)
	data.Set("token_type_hint", "access_token")
	data.Set("client_id", k.clientID)
	data.Set("client_secret", k.clientSecret)

	var info TokenInfo
	if err := k.http.PostForm(ctx, introspectURL, data, &info); err != nil {
		var se *httpclient.StatusError
		if stderrors.As(err, &se) && !se.Transient() {
			return nil, errors.NewNotAuthenticatedError(fmt.Sprintf("introspection rejected: %d", se.StatusCode))
		}
		return nil, errors.NewAuthUnavailableError(err)
	}

	if !info.Active {
		return nil, errors.NewNotAuthenticatedError("token is expired, revoked or malformed")
	}
	if info.Sub == "" {
		return nil, errors.NewNotAuthenticatedError("token has no subject")
	}
	return &info, nil
}

func (k *KeycloakClient) Verify(ctx context.Context, token string) (*models.Session, error) {
	info, err := k.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID: info.Sub,
		Email:  info.Email,
		Phone:  info.PhoneNumber,
		Name:   info.Name,
	}
	if info.Exp > 0 {
		session.ExpiresAt = time.Unix(info.Exp, 0).UTC()
	}
	if session.Name == "" {
		session.Name = info.Username
	}
	return session, nil
}
