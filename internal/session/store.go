// Package session keeps per-browser application state in memory.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"explorekit/internal/explorer"
	"explorekit/internal/finder"
)

// State is everything one browser session works on. Callers hold Mu while
// reading or changing it.
type State struct {
	ID        string
	Explorer  *explorer.State
	Finder    *finder.State
	CreatedAt time.Time

	Mu sync.Mutex
}

// Store holds states for ttl after their last use.
type Store struct {
	cache      *gocache.Cache
	viewRadius float64
	ttl        time.Duration
	mu         sync.Mutex
}

func NewStore(ttl time.Duration, defaultViewRadius float64) *Store {
	return &Store{
		cache:      gocache.New(ttl, ttl/2+time.Minute),
		viewRadius: defaultViewRadius,
		ttl:        ttl,
	}
}

// New creates and stores a fresh state.
func (s *Store) New() *State {
	st := &State{
		ID:        uuid.New().String(),
		Explorer:  explorer.NewState(),
		Finder:    finder.NewState(s.viewRadius),
		CreatedAt: time.Now(),
	}
	s.cache.Set(st.ID, st, s.ttl)
	return st
}

// Get returns the state for id and extends its lifetime.
func (s *Store) Get(id string) (*State, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	st := v.(*State)
	s.cache.Set(id, st, s.ttl)
	return st, true
}

// Obtain returns the state for id, or a new one when id is unknown or
// expired.
func (s *Store) Obtain(id string) (st *State, created bool) {
	if st, ok := s.Get(id); ok {
		return st, false
	}
	return s.New(), true
}

func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
