// Package identity turns the session cookie of a request into the user it
// belongs to
package identity

import (
	"context"
	"net/http"
	"strconv"

	"maqola/platform/internal/model"
	"maqola/platform/pkg/security"

	"go.uber.org/zap"
)

// TokenVerifier is implemented by security.SessionTokens
type TokenVerifier interface {
	Verify(token string) (*security.SessionClaims, bool)
}

// UserGetter is the single store method the resolver needs
type UserGetter interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

type Resolver struct {
	tokens     TokenVerifier
	users      UserGetter
	cookieName string
}

func NewResolver(tokens TokenVerifier, users UserGetter, cookieName string) *Resolver {
	return &Resolver{tokens: tokens, users: users, cookieName: cookieName}
}

// Resolve returns the user the request's session cookie belongs to, or nil
// for an anonymous visitor. Resolution never fails: a missing, invalid or
// expired token, a broken subject and a user deleted since the token was
// issued all mean anonymous. It only reads.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) *model.User {
	cookie, err := req.Cookie(r.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, ok := r.tokens.Verify(cookie.Value)
	if !ok {
		return nil
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 || uint64(uint(id)) != id {
		zap.L().Debug("Session token with malformed subject", zap.String("subject", claims.Subject))
		return nil
	}

	user, err := r.users.GetUser(ctx, uint(id))
	if err != nil {
		zap.L().Debug("Session user lookup failed", zap.Uint64("userID", id), zap.Error(err))
		return nil
	}

	return user
}
