// Package session tracks per-user relay state: whether AI processing is
// enabled, which provider is active, and any one-shot pending action
// awaiting the user's next message.
package session

import (
	"sync"

	"go-chatrelay-svc/internal/ai"
)

// PendingKind discriminates one-shot intents.
type PendingKind int

const (
	// PendingNote means the next message becomes the body of a new note.
	PendingNote PendingKind = iota + 1
	// PendingSentiment means the next message is sent for sentiment scoring.
	PendingSentiment
)

// PendingAction is a one-shot intent that reclassifies the user's next
// message instead of routing it normally.
type PendingAction struct {
	Kind  PendingKind
	Title string // note title; set only for PendingNote
}

// Session is a point-in-time snapshot of one user's relay state.
type Session struct {
	AIEnabled bool
	Provider  ai.Provider
}

// userState is the mutable per-user record. Its mutex serializes all
// transitions for that user; transitions for different users never
// contend with each other.
type userState struct {
	mu      sync.Mutex
	enabled bool
	active  ai.Provider
	pending *PendingAction
}

// Store owns all user sessions. Sessions are created lazily with the
// default provider enabled and live for the lifetime of the process.
type Store struct {
	mu         sync.RWMutex
	users      map[string]*userState
	defaultPrv ai.Provider
}

// NewStore creates an empty store whose fresh sessions start with the
// given default provider.
func NewStore(defaultProvider ai.Provider) *Store {
	return &Store{
		users:      make(map[string]*userState),
		defaultPrv: defaultProvider,
	}
}

// lookup returns the state for uid without creating it.
func (s *Store) lookup(uid string) (*userState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[uid]
	return u, ok
}

// entry returns the state for uid, creating a fresh enabled session with
// the default provider on first use.
func (s *Store) entry(uid string) *userState {
	s.mu.RLock()
	u, ok := s.users[uid]
	s.mu.RUnlock()
	if ok {
		return u
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[uid]; ok {
		return u
	}
	u = &userState{enabled: true, active: s.defaultPrv}
	s.users[uid] = u
	return u
}

// Ensure returns the user's session, creating it with defaults if it does
// not exist yet. Idempotent.
func (s *Store) Ensure(uid string) Session {
	u := s.entry(uid)
	u.mu.Lock()
	defer u.mu.Unlock()
	return Session{AIEnabled: u.enabled, Provider: u.active}
}

// Enable turns AI processing on. When provider is non-nil the active
// provider is changed to it; otherwise the existing provider is kept.
// Returns the resulting active provider.
func (s *Store) Enable(uid string, provider *ai.Provider) ai.Provider {
	u := s.entry(uid)
	u.mu.Lock()
	defer u.mu.Unlock()
	u.enabled = true
	if provider != nil {
		u.active = *provider
	}
	return u.active
}

// Disable turns AI processing off. The active provider and any pending
// action are left untouched.
func (s *Store) Disable(uid string) {
	u := s.entry(uid)
	u.mu.Lock()
	defer u.mu.Unlock()
	u.enabled = false
}

// SwitchProvider changes the active provider and applies the coupling
// invariant: switching to ProviderDisabled is the only way into dummy
// mode and turns AI off; any other provider turns AI on.
func (s *Store) SwitchProvider(uid string, provider ai.Provider) {
	u := s.entry(uid)
	u.mu.Lock()
	defer u.mu.Unlock()
	u.active = provider
	u.enabled = provider != ai.ProviderDisabled
}

// IsEnabled reports whether AI processing is on. A missing session reads
// as disabled.
func (s *Store) IsEnabled(uid string) bool {
	u, ok := s.lookup(uid)
	if !ok {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.enabled
}

// ActiveProvider returns the user's provider, or false when no session
// exists.
func (s *Store) ActiveProvider(uid string) (ai.Provider, bool) {
	u, ok := s.lookup(uid)
	if !ok {
		return ai.ProviderDisabled, false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.active, true
}

// IsDummy reports whether the user is in dummy mode.
func (s *Store) IsDummy(uid string) bool {
	u, ok := s.lookup(uid)
	if !ok {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.active == ai.ProviderDisabled
}

// ArmPending records a one-shot action for the user's next message,
// overwriting any previously armed action. Last write wins; actions are
// never queued.
func (s *Store) ArmPending(uid string, action PendingAction) {
	u := s.entry(uid)
	u.mu.Lock()
	defer u.mu.Unlock()
	a := action
	u.pending = &a
}

// TakePending atomically reads and clears the pending action. At most one
// caller observes any given armed action.
func (s *Store) TakePending(uid string) *PendingAction {
	u, ok := s.lookup(uid)
	if !ok {
		return nil
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	p := u.pending
	u.pending = nil
	return p
}
