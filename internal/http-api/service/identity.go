package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"mangaist/internal/config"
)

var ErrInvalidIdentityToken = errors.New("invalid identity token")

// Identity is the set of claims the service consumes from the external
// identity provider's id_token.
type Identity struct {
	AuthID   string // subject claim, unique per external account
	Email    string
	Name     string
	Surname  string
	Nickname string
	Picture  string
}

// IdentityVerifier validates an id_token issued by the external identity
// provider and extracts the claims the account resolution needs.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// hs256Verifier verifies id_tokens signed with the provider's client
// secret. Issuer and audience are checked when configured.
type hs256Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewIdentityVerifier(cfg *config.Config) IdentityVerifier {
	return &hs256Verifier{
		secret:   []byte(cfg.IdentitySecret),
		issuer:   cfg.IdentityIssuer,
		audience: cfg.IdentityAudience,
	}
}

func (v *hs256Verifier) Verify(_ context.Context, rawToken string) (*Identity, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentityToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidIdentityToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidIdentityToken)
	}

	identity := &Identity{AuthID: sub}
	identity.Email, _ = claims["email"].(string)
	identity.Name, _ = claims["given_name"].(string)
	identity.Surname, _ = claims["family_name"].(string)
	identity.Nickname, _ = claims["nickname"].(string)
	identity.Picture, _ = claims["picture"].(string)
	// Some providers only set a combined name claim
	if identity.Name == "" {
		identity.Name, _ = claims["name"].(string)
	}

	return identity, nil
}
