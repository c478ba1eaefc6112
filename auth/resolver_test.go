package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfboppong-code/joeythebrand/models"
)

type fakeVerifier struct {
	tokens map[string]*fbauth.Token
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	tok, ok := f.tokens[idToken]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return tok, nil
}

type fakeRoles struct {
	roles map[string]models.Role
	err   error
}

func (f *fakeRoles) Role(_ context.Context, uid string) (models.Role, error) {
	if f.err != nil {
		return "", f.err
	}
	if r, ok := f.roles[uid]; ok {
		return r, nil
	}
	return models.RoleCustomer, nil
}

func providerToken(uid, email string) *fbauth.Token {
	return &fbauth.Token{UID: uid, Claims: map[string]interface{}{"email": email}}
}

func newTestResolver(roles RoleStore) *Resolver {
	return NewResolver(&fakeVerifier{tokens: map[string]*fbauth.Token{
		"tok-ama":  providerToken("ama", "ama@example.com"),
		"tok-kofi": providerToken("kofi", "kofi@example.com"),
	}}, roles)
}

func TestResolveAttachesRole(t *testing.T) {
	r := newTestResolver(&fakeRoles{roles: map[string]models.Role{"ama": models.RoleAdmin}})

	identity, err := r.Resolve(context.Background(), "tok-ama")
	require.NoError(t, err)
	assert.Equal(t, "ama", identity.UID)
	assert.Equal(t, "ama@example.com", identity.Email)
	assert.True(t, identity.IsAdmin())

	current, ok := r.Current("ama")
	require.True(t, ok)
	assert.Equal(t, identity, current)
}

func TestResolveRoleLookupFailureIsNonFatal(t *testing.T) {
	r := newTestResolver(&fakeRoles{err: errors.New("firestore unavailable")})

	identity, err := r.Resolve(context.Background(), "tok-kofi")
	require.NoError(t, err, "a failed role lookup must not fail authentication")
	assert.Equal(t, models.RoleCustomer, identity.Role)
}

func TestResolveInvalidToken(t *testing.T) {
	r := newTestResolver(&fakeRoles{})

	_, err := r.Resolve(context.Background(), "bogus")
	assert.Error(t, err)
	_, ok := r.Current("ama")
	assert.False(t, ok)
}

func TestLogoutEndsSessionAndNotifies(t *testing.T) {
	r := newTestResolver(&fakeRoles{})

	var events []string
	cancel := r.OnChange(func(scope string, identity *models.Identity) {
		if identity == nil {
			events = append(events, "out:"+scope)
		} else {
			events = append(events, "in:"+scope)
		}
	})
	defer cancel()

	_, err := r.Resolve(context.Background(), "tok-ama")
	require.NoError(t, err)
	r.Logout("ama")

	_, ok := r.Current("ama")
	assert.False(t, ok)
	assert.Equal(t, []string{"in:ama", "out:ama"}, events)

	// Logging out an unknown uid does not notify again.
	r.Logout("ama")
	assert.Len(t, events, 2)
}

func TestOnChangeCancel(t *testing.T) {
	r := newTestResolver(&fakeRoles{})

	calls := 0
	cancel := r.OnChange(func(string, *models.Identity) { calls++ })
	cancel()

	_, err := r.Resolve(context.Background(), "tok-ama")
	require.NoError(t, err)
	assert.Zero(t, calls, "canceled subscription must not observe a stale scope")
}

func TestRegisterGuest(t *testing.T) {
	r := newTestResolver(&fakeRoles{})

	g := r.RegisterGuest()
	assert.True(t, len(g.UID) > len("guest_"))
	assert.Equal(t, models.RoleCustomer, g.Role)

	_, ok := r.Current(g.UID)
	assert.True(t, ok)
}

func TestWatchdogExpiresIdleSessions(t *testing.T) {
	r := newTestResolver(&fakeRoles{})

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	_, err := r.Resolve(context.Background(), "tok-ama")
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), "tok-kofi")
	require.NoError(t, err)

	// Just inside the limit: nothing expires.
	clock = clock.Add(DefaultInactivityLimit - time.Second)
	r.expireIdle()
	_, ok := r.Current("ama")
	assert.True(t, ok)

	// Kofi interacts; Ama does not.
	r.Touch("kofi")

	clock = clock.Add(2 * time.Second)
	r.expireIdle()

	_, ok = r.Current("ama")
	assert.False(t, ok, "idle session is logged out")
	_, ok = r.Current("kofi")
	assert.True(t, ok, "interaction resets the inactivity clock")
}

func TestWatchdogStopIsIdempotent(t *testing.T) {
	r := newTestResolver(&fakeRoles{})
	r.watchdogPoll = time.Millisecond

	stop := r.StartWatchdog()
	stop()
	stop()
}
