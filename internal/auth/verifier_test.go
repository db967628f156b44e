package auth_test

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
)

const (
	testIssuer   = "https://id.example.com"
	testClientID = "agency-admin"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return key
}

func sign(t *testing.T, key *rsa.PrivateKey, claims map[string]any) string {
	t.Helper()

	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.RS256, Key: key}, (&jose.SignerOptions{}).WithType("JWT"))
	require.NoError(t, err)

	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	obj, err := signer.Sign(payload)
	require.NoError(t, err)

	raw, err := obj.CompactSerialize()
	require.NoError(t, err)

	return raw
}

func baseClaims() map[string]any {
	now := time.Now()

	return map[string]any{
		"iss":   testIssuer,
		"aud":   testClientID,
		"sub":   "user-1",
		"exp":   now.Add(time.Hour).Unix(),
		"iat":   now.Unix(),
		"email": "ops@example.com",
		"name":  "Ops",
	}
}

func newVerifier(key *rsa.PrivateKey) *auth.OIDCVerifier {
	keySet := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}}
	return auth.NewOIDCVerifierFrom(oidc.NewVerifier(testIssuer, keySet, &oidc.Config{ClientID: testClientID}), "")
}

func TestOIDCVerifier(t *testing.T) {
	key := newKey(t)
	other := newKey(t)
	v := newVerifier(key)

	tests := []struct {
		name     string
		key      *rsa.PrivateKey
		mutate   func(map[string]any)
		wantRole string
		wantErr  error
	}{
		{
			name:     "string role",
			key:      key,
			mutate:   func(c map[string]any) { c["role"] = "finance" },
			wantRole: "finance",
		},
		{
			name:     "role list takes first",
			key:      key,
			mutate:   func(c map[string]any) { c["role"] = []string{"editor", "finance"} },
			wantRole: "editor",
		},
		{
			name:    "missing role",
			key:     key,
			mutate:  func(map[string]any) {},
			wantErr: auth.ErrMissingRole,
		},
		{
			name:    "wrong audience",
			key:     key,
			mutate:  func(c map[string]any) { c["role"] = "admin"; c["aud"] = "someone-else" },
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "expired",
			key:     key,
			mutate:  func(c map[string]any) { c["role"] = "admin"; c["exp"] = time.Now().Add(-time.Hour).Unix() },
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "foreign key",
			key:     other,
			mutate:  func(c map[string]any) { c["role"] = "admin" },
			wantErr: auth.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := baseClaims()
			tt.mutate(claims)

			id, err := v.Verify(context.Background(), sign(t, tt.key, claims))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "user-1", id.Subject)
			assert.Equal(t, tt.wantRole, id.Role)
			assert.Equal(t, "ops@example.com", id.Email)
			assert.Equal(t, "Ops", id.Name)
		})
	}
}

func TestOIDCVerifierGarbage(t *testing.T) {
	v := newVerifier(newKey(t))

	_, err := v.Verify(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
