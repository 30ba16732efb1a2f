package internal

import (
	"fmt"

	"maqola/platform/config"
	"maqola/platform/internal/identity"
	"maqola/platform/internal/service"
	"maqola/platform/internal/store"
	"maqola/platform/pkg/security"
)

// Deps is everything the handlers need. It's built once at startup and only
// read afterwards.
type Deps struct {
	Config       *config.Config
	Store        store.Store
	Tokens       *security.SessionTokens
	Accounts     *service.Accounts
	Publications *service.Publications
	Resolver     *identity.Resolver
	Sessions     *identity.Channel
}

func NewDeps(cfg *config.Config, s store.Store) (*Deps, error) {
	hasher, err := security.NewPasswords(cfg.PasswordHash, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to set up password hashing, %w", err)
	}

	tokens, err := security.NewSessionTokens(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to set up session tokens, %w", err)
	}

	return &Deps{
		Config:       cfg,
		Store:        s,
		Tokens:       tokens,
		Accounts:     service.NewAccounts(s, hasher, tokens),
		Publications: service.NewPublications(s, cfg.DefaultCategory),
		Resolver:     identity.NewResolver(tokens, s, identity.CookieName),
		Sessions:     identity.NewChannel(cfg.Domain, cfg.SSLEnabled, cfg.SessionTTL),
	}, nil
}
