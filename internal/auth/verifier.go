package auth

import (
	"context"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
)

// Identity is the authenticated caller.
type Identity struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

// DevIdentity is used for every request when authentication is disabled.
var DevIdentity = Identity{Subject: "dev", Role: RoleAdmin, Name: "Developer"}

// TokenVerifier turns a raw bearer token into an identity.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (Identity, error)
}

// OIDCVerifier verifies ID tokens issued by the configured identity provider.
type OIDCVerifier struct {
	verifier  *oidc.IDTokenVerifier
	roleClaim string
}

// NewOIDCVerifier discovers the provider at the issuer URL and builds a verifier for the client id.
func NewOIDCVerifier(ctx context.Context, cfg config.Auth) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, errors.Wrap(err, "discover oidc provider")
	}

	return NewOIDCVerifierFrom(provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}), cfg.RoleClaim), nil
}

// NewOIDCVerifierFrom wraps an existing go-oidc verifier.
func NewOIDCVerifierFrom(v *oidc.IDTokenVerifier, roleClaim string) *OIDCVerifier {
	if roleClaim == "" {
		roleClaim = "role"
	}

	return &OIDCVerifier{verifier: v, roleClaim: roleClaim}
}

// Verify checks the token signature, issuer, audience and expiry and extracts the identity.
func (v *OIDCVerifier) Verify(ctx context.Context, raw string) (Identity, error) {
	token, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return Identity{}, errors.Wrap(ErrInvalidToken, err.Error())
	}

	var claims map[string]any
	if err := token.Claims(&claims); err != nil {
		return Identity{}, errors.Wrap(ErrInvalidToken, err.Error())
	}

	role := roleFrom(claims[v.roleClaim])
	if role == "" {
		return Identity{}, ErrMissingRole
	}

	id := Identity{Subject: token.Subject, Role: role}
	id.Email, _ = claims["email"].(string)
	id.Name, _ = claims["name"].(string)

	return id, nil
}

// roleFrom accepts a role claim given as a string or a list, the first entry wins.
func roleFrom(v any) string {
	switch r := v.(type) {
	case string:
		return strings.TrimSpace(r)
	case []any:
		for _, item := range r {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}

	return ""
}
