package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Unix(1_700_000_000, 0).UTC()

type authFixture struct {
	svc     *AuthService
	users   *fakeDirectory
	revoked *fakeRevocations
	clock   *fakeClock
	codec   *jwtx.Codec
}

func newAuthFixture(t *testing.T, valid, refreshable time.Duration) *authFixture {
	t.Helper()

	codec, err := jwtx.NewCodec("mq", []byte("test-signing-secret-test-signing-secret-test-signing-secret-64b"))
	require.NoError(t, err)

	alice := domain.User{
		ID:           "u-alice",
		Username:     "alice",
		PasswordHash: "correct-horse",
		Roles: []domain.Role{
			{Name: "ADMIN", Permissions: []domain.Permission{{Name: "USER_READ"}, {Name: "USER_WRITE"}}},
			{Name: "USER", Permissions: []domain.Permission{{Name: "PROFILE_READ"}}},
		},
	}

	f := &authFixture{
		users:   newFakeDirectory(alice),
		revoked: newFakeRevocations(),
		clock:   &fakeClock{now: t0},
		codec:   codec,
	}
	f.svc = &AuthService{
		Users:     f.users,
		Passwords: plainVerifier{},
		Revoked:   f.revoked,
		Codec:     codec,
		Clock:     f.clock.Now,
		Config:    AuthConfig{ValidDuration: valid, RefreshableDuration: refreshable},
	}
	return f
}

func (f *authFixture) login(t *testing.T) string {
	t.Helper()
	res, err := f.svc.Authenticate(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)
	require.True(t, res.Authenticated)
	return res.Token
}

func (f *authFixture) at(offset time.Duration) {
	f.clock.Set(t0.Add(offset))
}

func (f *authFixture) valid(t *testing.T, token string) bool {
	t.Helper()
	res, err := f.svc.Introspect(context.Background(), token)
	require.NoError(t, err)
	return res.Valid
}

func TestAuthenticate_ScopeCoversRolesAndPermissions(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)

	claims, err := f.codec.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, "mq", claims.Issuer)
	require.True(t, t0.Equal(claims.IssuedAtTime()))
	require.True(t, t0.Add(time.Hour).Equal(claims.ExpiresAtTime()))

	for _, s := range []string{"ROLE_ADMIN", "USER_READ", "USER_WRITE", "ROLE_USER", "PROFILE_READ"} {
		require.True(t, claims.HasScope(s), s)
	}
	require.Zero(t, f.revoked.count(), "authenticate must not touch the revocation store")
}

func TestAuthenticate_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	ctx := context.Background()

	_, errUnknown := f.svc.Authenticate(ctx, "mallory", "correct-horse")
	_, errWrong := f.svc.Authenticate(ctx, "alice", "wrong")

	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthenticate_UnknownUserStillComparesPassword(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	verifier := &recordingVerifier{}
	f.svc.Passwords = verifier
	f.svc.UnknownUserHash = "placeholder-hash"
	ctx := context.Background()

	_, err := f.svc.Authenticate(ctx, "mallory", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.Equal(t, []string{"placeholder-hash", "correct-horse"}, verifier.hashes)
}

func TestAuthenticate_UnknownUserNeverMatchesPlaceholder(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	f.svc.UnknownUserHash = "placeholder-hash"

	res, err := f.svc.Authenticate(context.Background(), "mallory", "placeholder-hash")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.False(t, res.Authenticated)
}

func TestVerify_NormalModeExpiry(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)
	ctx := context.Background()

	_, err := f.svc.Verify(ctx, token)
	require.NoError(t, err)

	f.at(time.Hour - time.Second)
	_, err = f.svc.Verify(ctx, token)
	require.NoError(t, err)

	f.at(time.Hour)
	_, err = f.svc.Verify(ctx, token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerify_RejectsForgedAndMalformed(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)
	ctx := context.Background()

	t.Run("malformed", func(t *testing.T) {
		_, err := f.svc.Verify(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrUnauthenticated)
		require.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := jwtx.NewCodec("mq", []byte("some-other-secret"))
		require.NoError(t, err)
		forged, err := other.Issue("alice", "ROLE_ADMIN", t0, time.Hour)
		require.NoError(t, err)

		_, err = f.svc.Verify(ctx, forged)
		require.ErrorIs(t, err, ErrUnauthenticated)
		require.NotErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		claims, err := f.codec.Parse(token)
		require.NoError(t, err)
		escalated, err := f.codec.Issue("mallory", claims.Scope, t0, time.Hour)
		require.NoError(t, err)

		spliced := parts[0] + "." + strings.Split(escalated, ".")[1] + "." + parts[2]
		_, err = f.svc.Verify(ctx, spliced)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestIntrospect(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)

	require.True(t, f.valid(t, token))
	require.False(t, f.valid(t, "garbage"))
	require.False(t, f.valid(t, ""))

	t.Run("store errors propagate", func(t *testing.T) {
		f.revoked.fail(errStoreDown)
		defer f.revoked.fail(nil)

		_, err := f.svc.Introspect(context.Background(), token)
		require.ErrorIs(t, err, errStoreDown)
	})
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)
	ctx := context.Background()

	f.at(time.Minute)
	require.NoError(t, f.svc.Logout(ctx, token))
	require.False(t, f.valid(t, token), "logged out token must be invalid before its expiry")

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, f.svc.Logout(ctx, token))
		require.Equal(t, 1, f.revoked.count())
	})

	t.Run("invalid tokens are a silent no-op", func(t *testing.T) {
		require.NoError(t, f.svc.Logout(ctx, "garbage"))
		require.Equal(t, 1, f.revoked.count())
	})

	t.Run("logged out token cannot be refreshed", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, token)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestLogout_AfterExpiryWithinRefreshWindow(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)
	ctx := context.Background()

	f.at(2 * time.Hour)
	require.NoError(t, f.svc.Logout(ctx, token))
	require.Equal(t, 1, f.revoked.count())

	_, err := f.svc.Refresh(ctx, token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogout_RetainsRecordForWholeRefreshWindow(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)

	claims, err := f.codec.Parse(token)
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(context.Background(), token))

	f.revoked.mu.Lock()
	retain := f.revoked.entries[claims.ID]
	f.revoked.mu.Unlock()
	require.True(t, t0.Add(10*time.Hour).Equal(retain))
}

func TestLogout_StoreErrorPropagates(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)

	f.revoked.fail(errStoreDown)
	require.ErrorIs(t, f.svc.Logout(context.Background(), token), errStoreDown)
}

func TestRefresh_RotatesAndRevokes(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	old := f.login(t)
	ctx := context.Background()

	f.at(10 * time.Minute)
	res, err := f.svc.Refresh(ctx, old)
	require.NoError(t, err)
	require.True(t, res.Authenticated)

	oldClaims, err := f.codec.Parse(old)
	require.NoError(t, err)
	newClaims, err := f.codec.Parse(res.Token)
	require.NoError(t, err)

	require.NotEqual(t, oldClaims.ID, newClaims.ID)
	require.Equal(t, "alice", newClaims.Subject)
	require.Equal(t, oldClaims.Scope, newClaims.Scope)
	require.True(t, t0.Add(10*time.Minute).Equal(newClaims.IssuedAtTime()))

	require.False(t, f.valid(t, old))
	require.True(t, f.valid(t, res.Token))

	_, err = f.svc.Refresh(ctx, old)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefresh_Window(t *testing.T) {
	ctx := context.Background()

	t.Run("after expiry inside refreshable window", func(t *testing.T) {
		f := newAuthFixture(t, time.Hour, 2*time.Hour)
		token := f.login(t)

		f.at(90 * time.Minute)
		require.False(t, f.valid(t, token))

		_, err := f.svc.Refresh(ctx, token)
		require.NoError(t, err)
	})

	t.Run("at the refreshable deadline", func(t *testing.T) {
		f := newAuthFixture(t, time.Hour, 2*time.Hour)
		token := f.login(t)

		f.at(2 * time.Hour)
		_, err := f.svc.Refresh(ctx, token)
		require.ErrorIs(t, err, ErrUnauthenticated)
		require.Zero(t, f.revoked.count(), "failed refresh must not revoke")
	})
}

func TestRefresh_DeletedUser(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)

	f.users.remove("alice")
	_, err := f.svc.Refresh(context.Background(), token)
	require.ErrorIs(t, err, ErrUnauthenticated)

	// the old token was already revoked before the lookup
	require.Equal(t, 1, f.revoked.count())
}

func TestRefresh_RevokeFailureIssuesNothing(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)

	// reads succeed so verification passes, the revoke write fails
	f.svc.Revoked = &failingWrites{fakeRevocations: f.revoked}

	res, err := f.svc.Refresh(context.Background(), token)
	require.ErrorIs(t, err, errStoreDown)
	require.Empty(t, res.Token)
}

type failingWrites struct {
	*fakeRevocations
}

func (f *failingWrites) RecordRevoked(context.Context, string, time.Time) error {
	return errStoreDown
}

// Issue at t=0 with 3600/7200: valid at 3599, invalid at 3601, refresh at
// 5000 issues a token with iat=5000, and the old one is rejected at 5001.
func TestTokenLifecycleScenario(t *testing.T) {
	f := newAuthFixture(t, 3600*time.Second, 7200*time.Second)
	ctx := context.Background()
	token := f.login(t)

	f.at(3599 * time.Second)
	require.True(t, f.valid(t, token))

	f.at(3601 * time.Second)
	require.False(t, f.valid(t, token))

	f.at(5000 * time.Second)
	res, err := f.svc.Refresh(ctx, token)
	require.NoError(t, err)

	claims, err := f.codec.Parse(res.Token)
	require.NoError(t, err)
	require.True(t, t0.Add(5000*time.Second).Equal(claims.IssuedAtTime()))

	f.at(5001 * time.Second)
	require.False(t, f.valid(t, token))
	require.True(t, f.valid(t, res.Token))
}

func TestConcurrentLogout(t *testing.T) {
	f := newAuthFixture(t, time.Hour, 10*time.Hour)
	token := f.login(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.svc.Logout(context.Background(), token))
		}()
	}
	wg.Wait()

	require.Equal(t, 1, f.revoked.count())
	require.False(t, f.valid(t, token))
}
