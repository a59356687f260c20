package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of an HS256 session token.
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone_number,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier validates locally signed session tokens.
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewJWTVerifier(secret, issuer, audience string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	return &JWTVerifier{secret: []byte(secret), issuer: issuer, audience: audience}, nil
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*models.Session, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewNotAuthenticatedError("session expired")
		}
		return nil, errors.NewNotAuthenticatedError(err.Error())
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.NewNotAuthenticatedError("token has no subject")
	}

	return &models.Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Phone:     claims.Phone,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Issue signs a session token; used by tests and local tooling.
func (v *JWTVerifier) Issue(session models.Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: session.Email,
		Phone: session.Phone,
		Name:  session.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
