package validatesession

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"schemesathi/internal/common/auth"
	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/models"
	"schemesathi/internal/store/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type mockContacts struct {
	mock.Mock
}

func (m *mockContacts) SaveContact(ctx context.Context, c models.Contact) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockContacts) GetContact(ctx context.Context, userID string) (*models.Contact, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*models.Contact)
	return c, args.Error(1)
}

func issue(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token, err := verifier(t, secret).Issue(models.Session{
		UserID: "u-1", Email: "lakshmi@example.com", Name: "Lakshmi",
	}, ttl)
	require.NoError(t, err)
	return token
}

func TestHandler_Execute_ValidToken(t *testing.T) {
	contacts := profile.NewMemoryStore()
	h := NewHandler(LoadConfig(), verifier(t, secret), contacts, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Authorization: "Bearer " + issue(t, time.Hour)})
	require.NoError(t, err)

	assert.True(t, out.Authenticated)
	assert.Equal(t, "u-1", out.UserID)
	assert.NotEmpty(t, out.ExpiresAt)

	c, err := contacts.GetContact(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "lakshmi@example.com", c.Email)
}

func TestHandler_Execute_Rejections(t *testing.T) {
	h := NewHandler(LoadConfig(), verifier(t, secret), nil, logger.NewTestLogger(t))

	tests := map[string]*Input{
		"missing":      {},
		"not bearer":   {Authorization: "Basic abc"},
		"garbage":      {Token: "not-a-jwt"},
		"wrong secret": {Token: mustIssueWith(t, "other-secret")},
		"expired":      {Token: issue(t, -time.Minute)},
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeNotAuthenticated, errors.CodeOf(err))
		})
	}
}

func TestHandler_Execute_ContactFailureIsNotFatal(t *testing.T) {
	contacts := new(mockContacts)
	contacts.On("SaveContact", mock.Anything, mock.MatchedBy(func(c models.Contact) bool {
		return c.UserID == "u-1"
	})).Return(stderrors.New("db down"))

	h := NewHandler(LoadConfig(), verifier(t, secret), contacts, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Token: issue(t, time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.UserID)
	contacts.AssertExpectations(t)
}

func mustIssueWith(t *testing.T, key string) string {
	t.Helper()
	token, err := verifier(t, key).Issue(models.Session{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)
	return token
}

func verifier(t *testing.T, key string) *auth.JWTVerifier {
	t.Helper()
	v, err := auth.NewJWTVerifier(key, "", "")
	require.NoError(t, err)
	return v
}
