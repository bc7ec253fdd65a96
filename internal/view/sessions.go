package view

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const DefaultSessionTTL = 30 * time.Minute

// Sessions keeps one State per session ID and forgets idle sessions after
// their TTL. States are stored by value, so callers never share one.
type Sessions struct {
	store *cache.Cache
}

func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{store: cache.New(ttl, 2*ttl)}
}

// Start opens a new session with the default state.
func (s *Sessions) Start() (string, State) {
	id := uuid.NewString()
	st := DefaultState()
	s.store.SetDefault(id, st)
	return id, st
}

// Get returns the state of id. Unknown or expired IDs report false.
func (s *Sessions) Get(id string) (State, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return State{}, false
	}
	v, ok := s.store.Get(id)
	if !ok {
		return State{}, false
	}
	return v.(State), true
}

// Put stores st for id and refreshes its expiry.
func (s *Sessions) Put(id string, st State) {
	s.store.SetDefault(id, st)
}

func (s *Sessions) Len() int { return s.store.ItemCount() }
