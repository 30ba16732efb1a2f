package security

import (
	"errors"
	"fmt"
	"strings"
)

const (
	HashBcrypt   = "bcrypt"
	HashArgon2id = "argon2id"
)

var ErrUnknownHashAlgorithm = errors.New("unknown password hash algorithm")

// Hasher is a one-way, salted password hasher
type Hasher interface {
	GenerateFromPassword(p string) (string, error)
	VerifyPasswd(p, e string) bool
}

// Passwords hashes new passwords with the configured algorithm but verifies
// stored hashes of every supported algorithm, so switching the config value
// doesn't lock existing users out.
type Passwords struct {
	primary Hasher
	bcrypt  *BcryptHash
	argon   *ArgonHash
}

func NewPasswords(algorithm string, bcryptCost int) (*Passwords, error) {
	p := &Passwords{
		bcrypt: NewBcrypt(bcryptCost),
		argon:  NewArgon(),
	}

	switch algorithm {
	case HashBcrypt:
		p.primary = p.bcrypt
	case HashArgon2id:
		p.primary = p.argon
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHashAlgorithm, algorithm)
	}

	return p, nil
}

func (p *Passwords) GenerateFromPassword(pw string) (string, error) {
	return p.primary.GenerateFromPassword(pw)
}

func (p *Passwords) VerifyPasswd(pw, e string) bool {
	switch {
	case isBcrypt(e):
		return p.bcrypt.VerifyPasswd(pw, e)
	case strings.HasPrefix(e, argonPrefix):
		return p.argon.VerifyPasswd(pw, e)
	default:
		return false
	}
}
