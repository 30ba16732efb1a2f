// Package service contains the account and publication operations the HTTP
// handlers are built on. Nothing in here knows about gin or cookies.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"maqola/platform/internal/model"
	"maqola/platform/internal/store"
	"maqola/platform/pkg/security"
	"maqola/platform/validators"
)

// TokenIssuer signs session tokens, implemented by security.SessionTokens
type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
}

// Session is the outcome of a successful registration or login. Token goes
// into the credential cookie and is valid until ExpiresAt.
type Session struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

type Accounts struct {
	store  store.Store
	hasher security.Hasher
	tokens TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func NewAccounts(s store.Store, h security.Hasher, t TokenIssuer) *Accounts {
	return &Accounts{store: s, hasher: h, tokens: t}
}

func (a *Accounts) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := validators.NormalizeEmail(in.Email)

	if err := validators.TextValidator(fullName, validators.MaxFullNameLength); err != nil {
		return nil, invalid("full_name", err)
	}

	if err := validators.EmailValidator(email); err != nil {
		return nil, invalid("email", err)
	}

	if err := validators.PasswordValidator(in.Password); err != nil {
		return nil, invalid("password", err)
	}

	// Fast path for the common case, the store still has the final word
	// through its unique index
	exists, err := a.store.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := a.hasher.GenerateFromPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	user := &model.User{
		FullName:       fullName,
		Email:          email,
		HashedPassword: hash,
	}

	if err := a.store.InsertUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}

		return nil, err
	}

	return a.startSession(user)
}

// Login never tells the caller whether the email exists: an unknown email
// and a wrong password produce the same error after the same amount of
// hashing work.
func (a *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	email = validators.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := a.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.hasher.VerifyPasswd(password, a.dummy())
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !a.hasher.VerifyPasswd(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	return a.startSession(user)
}

func (a *Accounts) startSession(user *model.User) (*Session, error) {
	token, expiresAt, err := a.tokens.Issue(strconv.FormatUint(uint64(user.ID), 10))
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token, %w", err)
	}

	return &Session{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (a *Accounts) dummy() string {
	a.dummyOnce.Do(func() {
		// Errors only leave the hash empty, which verifies instantly but is
		// still rejected
		a.dummyHash, _ = a.hasher.GenerateFromPassword("not a real password")
	})

	return a.dummyHash
}

// Delete removes the account registered with email together with all of its
// publications
func (a *Accounts) Delete(ctx context.Context, email string) error {
	user, err := a.store.FindUserByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		return err
	}

	return a.store.DeleteUser(ctx, user.ID)
}
