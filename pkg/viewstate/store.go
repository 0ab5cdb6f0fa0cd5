package viewstate

import "sync"

// Store holds the current State of one session. Every update replaces the
// whole value; readers always get a consistent snapshot.
type Store struct {
	mu      sync.RWMutex
	state   State
	version uint64
}

// NewStore creates a store seeded with initial.
func NewStore(initial State) *Store {
	return &Store{state: initial.Clone()}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Version increases by one on every successful Dispatch or Reset.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Dispatch applies actions atomically. Either all succeed and the result
// becomes the current state, or the state is left untouched.
func (s *Store) Dispatch(actions ...Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Apply(s.state, actions...)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state = next
	s.version++
	return next.Clone(), nil
}

// Reset replaces the state wholesale.
func (s *Store) Reset(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	s.version++
}
