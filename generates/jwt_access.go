package generates

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentdms/admin/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccessTTL matches the 24h session of the web client.
const DefaultAccessTTL = 24 * time.Hour

// JWTAccessClaims jwt claims
// Roles and Permissions describe the user at issue time for the client UI.
// Authorization never trusts them; roles are reloaded on every request.
type JWTAccessClaims struct {
	jwt.RegisteredClaims
	Email       string   `json:"email,omitempty"`
	Username    string   `json:"username,omitempty"`
	Roles       []string `json:"roles"`       // Always include, even if empty
	Permissions []string `json:"permissions"` // Always include, even if empty
}

// AccessSubject is what a token is issued for.
type AccessSubject struct {
	UserID      string
	Email       string
	Username    string
	Roles       []string
	Permissions []string
}

// NewJWTAccessGenerate create to generate the jwt access token instance
func NewJWTAccessGenerate(issuer, audience string, key []byte, ttl time.Duration) *JWTAccessGenerate {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	return &JWTAccessGenerate{
		Issuer:       issuer,
		Audience:     audience,
		SignedKey:    key,
		SignedMethod: jwt.SigningMethodHS256,
		TTL:          ttl,
		now:          time.Now,
	}
}

// JWTAccessGenerate issues and verifies HMAC signed access tokens.
type JWTAccessGenerate struct {
	Issuer       string
	Audience     string
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	TTL          time.Duration
	now          func() time.Time
}

// Token signs a new access token and returns it with its claims.
func (a *JWTAccessGenerate) Token(sub AccessSubject) (string, *JWTAccessClaims, error) {
	if sub.UserID == "" {
		return "", nil, errors.ErrInvalidRequest
	}
	if len(a.SignedKey) == 0 {
		return "", nil, errors.New("jwt signing key is not configured")
	}
	now := a.now().UTC()
	claims := &JWTAccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
			Issuer:    a.Issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.TTL)),
		},
		Email:       sub.Email,
		Username:    sub.Username,
		Roles:       []string{},
		Permissions: []string{},
	}
	if a.Audience != "" {
		claims.Audience = jwt.ClaimStrings{a.Audience}
	}
	claims.Roles = append(claims.Roles, sub.Roles...)
	claims.Permissions = append(claims.Permissions, sub.Permissions...)

	token := jwt.NewWithClaims(a.SignedMethod, claims)
	access, err := token.SignedString(a.SignedKey)
	if err != nil {
		return "", nil, err
	}
	return access, claims, nil
}

// Parse verifies signature, issuer, audience and expiry. Any failure is
// reported as ErrUnauthenticated.
func (a *JWTAccessGenerate) Parse(tokenString string) (*JWTAccessClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{a.SignedMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.Issuer))
	}
	if a.Audience != "" {
		opts = append(opts, jwt.WithAudience(a.Audience))
	}
	claims := &JWTAccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.SignedKey, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnauthenticated, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, errors.ErrUnauthenticated
	}
	return claims, nil
}
