package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schemesathi/internal/common/config"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifier_RoundTrip(t *testing.T) {
	v, err := NewJWTVerifier("secret", "schemesathi", "citizen-app")
	require.NoError(t, err)

	token, err := v.Issue(models.Session{UserID: "u-1", Email: "u1@example.com", Phone: "+919000000001"}, time.Hour)
	require.NoError(t, err)

	session, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", session.UserID)
	assert.Equal(t, "u1@example.com", session.Email)
	assert.Equal(t, "+919000000001", session.Phone)
	assert.False(t, session.IsExpired())
}

func TestJWTVerifier_Rejects(t *testing.T) {
	v, err := NewJWTVerifier("secret", "", "")
	require.NoError(t, err)

	expired, err := v.Issue(models.Session{UserID: "u-1"}, -time.Minute)
	require.NoError(t, err)

	other, err := NewJWTVerifier("other-secret", "", "")
	require.NoError(t, err)
	foreign, err := other.Issue(models.Session{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)

	noSubject, err := v.Issue(models.Session{}, time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":    expired,
		"bad sig":    foreign,
		"no subject": noSubject,
		"no expiry":  noExpiry,
		"garbage":    "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeNotAuthenticated, errors.CodeOf(err))
		})
	}
}

func TestJWTVerifier_RequiresSecret(t *testing.T) {
	_, err := NewJWTVerifier("", "", "")
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, h := range []string{"", "Bearer ", "Basic abc", "abc"} {
		_, err := BearerToken(h)
		assert.Equal(t, errors.ErrCodeNotAuthenticated, errors.CodeOf(err), h)
	}
}

func newKeycloakServer(t *testing.T, status int, body interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/realms/citizens/protocol/openid-connect/token/introspect", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "access_token", r.PostForm.Get("token_type_hint"))
		assert.Equal(t, "schemesathi-api", r.PostForm.Get("client_id"))
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
}

func TestKeycloakVerify_ActiveToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	server := newKeycloakServer(t, http.StatusOK, map[string]interface{}{
		"active":       true,
		"sub":          "kc-42",
		"email":        "citizen@example.com",
		"phone_number": "+919876543210",
		"username":     "citizen",
		"exp":          exp,
	})
	defer server.Close()

	kc := NewKeycloakClient(server.URL+"/", "citizens", "schemesathi-api", "s", time.Second)
	session, err := kc.Verify(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, "kc-42", session.UserID)
	assert.Equal(t, "citizen", session.Name)
	assert.Equal(t, "+919876543210", session.Phone)
	assert.Equal(t, exp, session.ExpiresAt.Unix())
}

func TestKeycloakVerify_InactiveToken(t *testing.T) {
	server := newKeycloakServer(t, http.StatusOK, map[string]interface{}{"active": false})
	defer server.Close()

	kc := NewKeycloakClient(server.URL, "citizens", "schemesathi-api", "s", time.Second)
	_, err := kc.Verify(context.Background(), "tok")
	assert.Equal(t, errors.ErrCodeNotAuthenticated, errors.CodeOf(err))
}

func TestKeycloakVerify_ProviderDown(t *testing.T) {
	server := newKeycloakServer(t, http.StatusServiceUnavailable, map[string]string{"error": "down"})
	defer server.Close()

	kc := NewKeycloakClient(server.URL, "citizens", "schemesathi-api", "s", time.Second)
	_, err := kc.Verify(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAuthUnavailable, errors.CodeOf(err))
	assert.True(t, errors.AsStandardError(err).Retryable)
}

func TestNewVerifier(t *testing.T) {
	var cfg config.AuthConfig
	cfg.Mode = "jwt"
	cfg.JWT.Secret = "s"
	v, err := NewVerifier(cfg)
	require.NoError(t, err)
	assert.IsType(t, &JWTVerifier{}, v)

	cfg.Mode = "keycloak"
	cfg.Keycloak.URL = "http://kc"
	cfg.Keycloak.Realm = "r"
	v, err = NewVerifier(cfg)
	require.NoError(t, err)
	assert.IsType(t, &KeycloakClient{}, v)

	cfg.Mode = "saml"
	_, err = NewVerifier(cfg)
	assert.Error(t, err)
}
