package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcoord/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("user-123", "u@example.com", []string{"coordinator", "finance"}, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, []string{"coordinator", "finance"}, claims.Roles)
}

func TestJWTVerifier_Verify(t *testing.T) {
	const secret = "test-secret"
	issue := func(t *testing.T, secret string, issuedAt time.Time, expiry time.Duration) string {
		t.Helper()
		issuer := &jwtIssuer{secret: []byte(secret), now: func() time.Time { return issuedAt }}
		token, err := issuer.Issue("user-123", "u@example.com", []string{domain.RoleFinance}, expiry)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr bool
	}{
		{
			name:  "valid token",
			token: func(t *testing.T) string { return issue(t, secret, time.Now(), time.Hour) },
		},
		{
			name:    "expired token",
			token:   func(t *testing.T) string { return issue(t, secret, time.Now().Add(-2*time.Hour), time.Hour) },
			wantErr: true,
		},
		{
			name:    "wrong secret",
			token:   func(t *testing.T) string { return issue(t, "other-secret", time.Now(), time.Hour) },
			wantErr: true,
		},
		{
			name: "unexpected signing method",
			token: func(t *testing.T) string {
				tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   "user-123",
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				})
				s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return s
			},
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   func(*testing.T) string { return "not-a-jwt" },
			wantErr: true,
		},
	}

	verifier := NewJWTVerifier(secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := verifier.Verify(tt.token(t))
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-123", principal.Subject)
			assert.Equal(t, "u@example.com", principal.Email)
			assert.True(t, principal.HasRole(domain.RoleFinance))
			assert.False(t, principal.HasRole(domain.RoleCoordinator))
		})
	}
}
