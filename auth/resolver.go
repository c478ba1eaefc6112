package auth

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"

	"github.com/tfboppong-code/joeythebrand/cart"
	"github.com/tfboppong-code/joeythebrand/models"
)

// TokenVerifier validates a provider-issued ID token.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// RoleStore looks up the stored role for a uid from the user's profile
// document.
type RoleStore interface {
	Role(ctx context.Context, uid string) (models.Role, error)
}

// ChangeFunc observes auth-state changes. identity is nil when the scope
// signed out.
type ChangeFunc func(scope string, identity *models.Identity)

// Resolver wraps the auth provider: it resolves provider tokens into an
// Identity with its role attached, tracks live sessions and their last
// activity, and notifies subscribers of auth-state changes.
type Resolver struct {
	verifier TokenVerifier
	roles    RoleStore

	mu        sync.Mutex
	sessions  map[string]*session
	watchers  map[int]ChangeFunc
	nextWatch int

	resolving atomic.Int32
	now       func() time.Time

	inactivityLimit time.Duration
	watchdogPoll    time.Duration
}

type session struct {
	identity     models.Identity
	lastActivity time.Time
}

func NewResolver(verifier TokenVerifier, roles RoleStore) *Resolver {
	return &Resolver{
		verifier:        verifier,
		roles:           roles,
		sessions:        map[string]*session{},
		watchers:        map[int]ChangeFunc{},
		now:             time.Now,
		inactivityLimit: DefaultInactivityLimit,
		watchdogPoll:    DefaultWatchdogPoll,
	}
}

// Resolve verifies the provider token, attaches the stored role and opens a
// session. A failed role lookup is non-fatal: the identity stays
// authenticated with the default customer role.
func (r *Resolver) Resolve(ctx context.Context, idToken string) (models.Identity, error) {
	r.resolving.Add(1)
	defer r.resolving.Add(-1)

	tok, err := r.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return models.Identity{}, err
	}

	email, _ := tok.Claims["email"].(string)

	role, err := r.roles.Role(ctx, tok.UID)
	if err != nil {
		log.Printf("⚠️ role lookup failed for %s, defaulting to customer: %v", tok.UID, err)
		role = models.RoleCustomer
	}

	identity := models.Identity{UID: tok.UID, Email: email, Role: role}
	r.open(identity)
	return identity, nil
}

// RegisterGuest opens an anonymous session with its own cart scope.
func (r *Resolver) RegisterGuest() models.Identity {
	identity := models.Identity{
		UID:  cart.GuestScopePrefix + uuid.NewString(),
		Role: models.RoleCustomer,
	}
	r.open(identity)
	return identity
}

func (r *Resolver) open(identity models.Identity) {
	r.mu.Lock()
	r.sessions[identity.UID] = &session{identity: identity, lastActivity: r.now()}
	r.mu.Unlock()
	r.notify(identity.UID, &identity)
}

// Loading reports whether an initial resolution is in flight.
func (r *Resolver) Loading() bool {
	return r.resolving.Load() > 0
}

// Current returns the live identity for a uid, or none.
func (r *Resolver) Current(uid string) (models.Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[uid]
	if !ok {
		return models.Identity{}, false
	}
	return s.identity, true
}

// Touch records a qualifying user interaction, resetting the inactivity
// clock for the session.
func (r *Resolver) Touch(uid string) {
	r.mu.Lock()
	if s, ok := r.sessions[uid]; ok {
		s.lastActivity = r.now()
	}
	r.mu.Unlock()
}

// Logout ends the session and clears its markers. Subscribers are notified
// with a nil identity.
func (r *Resolver) Logout(uid string) {
	r.mu.Lock()
	_, ok := r.sessions[uid]
	delete(r.sessions, uid)
	r.mu.Unlock()

	if ok {
		r.notify(uid, nil)
	}
}

// OnChange subscribes to auth-state changes. The returned cancel removes the
// subscription; owners must cancel on teardown so a stale scope is never
// acted on.
func (r *Resolver) OnChange(fn ChangeFunc) (cancel func()) {
	r.mu.Lock()
	id := r.nextWatch
	r.nextWatch++
	r.watchers[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.watchers, id)
		r.mu.Unlock()
	}
}

func (r *Resolver) notify(scope string, identity *models.Identity) {
	r.mu.Lock()
	fns := make([]ChangeFunc, 0, len(r.watchers))
	for _, fn := range r.watchers {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(scope, identity)
	}
}
