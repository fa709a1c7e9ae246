package client

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/agoranews/comment-gateway/internal/config"
)

// SessionSource is the gateway-held session: an oauth2 token source against
// the external auth server's token endpoint with a long-lived refresh token.
// ReuseTokenSource refreshes the access token transparently when it expires,
// so read paths that run without a caller-supplied bearer (anonymous thread
// fetches against a restricted API) keep working across token rotations.
type SessionSource struct {
	source oauth2.TokenSource
}

func NewSessionSource(cfg config.AuthConfig) *SessionSource {
	if cfg.TokenURL == "" || cfg.RefreshToken == "" {
		return nil
	}

	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: cfg.TokenURL,
		},
	}

	// Seed with an already-expired token so the first call refreshes.
	seed := &oauth2.Token{
		RefreshToken: cfg.RefreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	}

	return &SessionSource{
		source: oauth2.ReuseTokenSource(nil, conf.TokenSource(context.Background(), seed)),
	}
}

// Token returns a currently-valid access token, refreshing if needed.
// A failed refresh means the gateway session itself is gone.
func (s *SessionSource) Token() (string, error) {
	tok, err := s.source.Token()
	if err != nil {
		return "", ErrSessionExpired
	}
	return tok.AccessToken, nil
}

// TokenExpired reports whether a caller-supplied bearer is a JWT whose exp
// claim has already passed. The signature is NOT verified here — the remote
// API is the authority — this only short-circuits requests that are certain
// to come back 401. Opaque (non-JWT) tokens are passed through to the server.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
