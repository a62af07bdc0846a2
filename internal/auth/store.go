package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/angelcm/campaign-insight-go/internal/config"
)

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
)

// User is one entry of the credential table. SecretHash is a bcrypt hash;
// plaintext secrets are never retained after store construction.
type User struct {
	Email      string
	SecretHash []byte
	Role       Role
	Tenant     string
	TeamLead   string
}

var (
	// ErrInvalidCredentials is returned for unknown identifiers and wrong
	// secrets alike; callers must not be able to tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// CredentialStore resolves an identifier to a stored user. It is injected
// wherever authentication happens so a real identity provider can replace
// the static table without touching callers.
type CredentialStore interface {
	Lookup(email string) (User, bool)
}

// StaticStore is the in-process credential table, hashed once at startup.
type StaticStore struct {
	users map[string]User
}

func NewStaticStore(seeds []config.UserSeed) (*StaticStore, error) {
	users := make(map[string]User, len(seeds))
	for _, s := range seeds {
		email := normEmail(s.Email)
		if email == "" || s.Secret == "" {
			return nil, errors.New("credential seed missing email or secret")
		}
		role := Role(s.Role)
		if role != RoleAdmin && role != RoleManager {
			return nil, errors.New("credential seed has unknown role: " + s.Role)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Secret), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		users[email] = User{
			Email:      email,
			SecretHash: hash,
			Role:       role,
			Tenant:     strings.TrimSpace(s.Tenant),
			TeamLead:   strings.TrimSpace(s.TeamLead),
		}
	}
	return &StaticStore{users: users}, nil
}

func (s *StaticStore) Lookup(email string) (User, bool) {
	u, ok := s.users[normEmail(email)]
	return u, ok
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
