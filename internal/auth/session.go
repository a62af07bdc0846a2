package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Session binds an opaque token to an authenticated user. Sessions live until
// an explicit logout; no expiry is modeled.
type Session struct {
	Token     string
	User      User
	CreatedAt time.Time
}

// Gate authenticates against an injected CredentialStore and tracks live
// sessions in memory. One gate serves all interactive clients; concurrent
// clients are isolated by token.
type Gate struct {
	store CredentialStore

	mu       sync.RWMutex
	sessions map[string]Session

	// dummyHash absorbs a bcrypt compare when the identifier is unknown, so
	// failed logins cost the same whichever field was wrong.
	dummyHash []byte
}

func NewGate(store CredentialStore) (*Gate, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Gate{
		store:     store,
		sessions:  make(map[string]Session),
		dummyHash: dummy,
	}, nil
}

// Authenticate checks the pair against the store and, on success, opens a
// session. Unknown identifier and wrong secret both return
// ErrInvalidCredentials with nothing to distinguish them.
func (g *Gate) Authenticate(email, secret string) (Session, error) {
	u, ok := g.store.Lookup(email)
	hash := g.dummyHash
	if ok {
		hash = u.SecretHash
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(secret)); err != nil || !ok {
		return Session{}, ErrInvalidCredentials
	}
	sess := Session{Token: uuid.NewString(), User: u, CreatedAt: time.Now().UTC()}
	g.mu.Lock()
	g.sessions[sess.Token] = sess
	g.mu.Unlock()
	return sess, nil
}

// Resolve returns the session for a token, if one is live.
func (g *Gate) Resolve(token string) (Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s, ok := g.sessions[token]
	return s, ok
}

// Logout destroys the session. Destroying an unknown token is a no-op.
func (g *Gate) Logout(token string) {
	g.mu.Lock()
	delete(g.sessions, token)
	g.mu.Unlock()
}
