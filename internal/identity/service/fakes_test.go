package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
)

type fakeDirectory struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeDirectory(users ...domain.User) *fakeDirectory {
	d := &fakeDirectory{users: make(map[string]domain.User)}
	for _, u := range users {
		d.users[u.Username] = u
	}
	return d
}

func (d *fakeDirectory) FindByUsername(_ context.Context, username string) (domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[username]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (d *fakeDirectory) FindByID(_ context.Context, id string) (domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (d *fakeDirectory) remove(username string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.users, username)
}

// plainVerifier treats the stored hash as the plaintext password.
type plainVerifier struct{}

func (plainVerifier) Matches(plain, hash string) bool { return plain == hash }

// recordingVerifier remembers every hash it was asked to compare against.
type recordingVerifier struct {
	mu     sync.Mutex
	hashes []string
}

func (v *recordingVerifier) Matches(plain, hash string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hashes = append(v.hashes, hash)
	return plain == hash
}

type fakeRevocations struct {
	mu      sync.Mutex
	entries map[string]time.Time
	err     error
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{entries: make(map[string]time.Time)}
}

func (f *fakeRevocations) RecordRevoked(_ context.Context, id string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.entries[id]; !ok {
		f.entries[id] = expiresAt
	}
	return nil
}

func (f *fakeRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.entries[id]
	return ok, nil
}

func (f *fakeRevocations) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func (f *fakeRevocations) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

var errStoreDown = errors.New("store down")

// fakeClock is a settable clock for deterministic expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
