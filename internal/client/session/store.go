package session

import (
	"context"
	"sync"

	"github.com/hoaxify/hoaxify-cli/internal/client/api"
	"github.com/hoaxify/hoaxify-cli/internal/client/models"
)

// Listener is invoked synchronously on every session change; the
// argument is nil after a Clear.
type Listener func(*models.User)

// Store holds the current-user record. There is exactly one per
// process. Writes persist to the durable repository before the
// in-memory value changes, so a storage failure leaves no partially
// applied state observable.
//
// Store implements api.CredentialSource: the gateway pulls Basic
// credentials from it per request, which makes login/logout/update
// visible to the very next call without separate header bookkeeping.
type Store struct {
	mu      sync.RWMutex
	current *models.User
	repo    Repository

	subMu   sync.Mutex
	subs    map[int]Listener
	nextSub int
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, subs: make(map[int]Listener)}
}

// Restore loads the persisted session, if any, into memory. Called once
// at startup, before any subscriber exists.
func (s *Store) Restore(ctx context.Context) error {
	user, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the session user, or nil when logged out.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// SetCurrent replaces the session, persists it, and notifies
// subscribers. The persistence error, if any, is returned before the
// in-memory state is touched.
func (s *Store) SetCurrent(ctx context.Context, user models.User) error {
	if err := s.repo.Save(ctx, user); err != nil {
		return err
	}
	s.mu.Lock()
	u := user
	s.current = &u
	s.mu.Unlock()

	s.notify(&user)
	return nil
}

// Clear removes the session from memory and durable storage and
// notifies subscribers with nil.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.notify(nil)
	return nil
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *Store) Subscribe(fn Listener) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(user *models.User) {
	s.subMu.Lock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		var copied *models.User
		if user != nil {
			u := *user
			copied = &u
		}
		fn(copied)
	}
}

// Credentials implements api.CredentialSource. Credentials are only
// offered while the session user is logged in.
func (s *Store) Credentials() (api.Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || !s.current.IsLoggedIn {
		return api.Credentials{}, false
	}
	return api.Credentials{Username: s.current.Username, Password: s.current.Password}, true
}
