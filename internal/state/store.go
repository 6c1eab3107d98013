package state

import "sync"

// Change describes one committed transition
type Change struct {
	Prev   State
	Next   State
	Action Action
}

// Listener observes committed transitions. Listeners run synchronously in
// dispatch order and must not call Dispatch themselves.
type Listener func(Change)

// Store holds the application state. Dispatch is the only way to change it.
type Store struct {
	dispatchMu sync.Mutex // Serializes reduce + notify so listeners see transitions in order

	mu        sync.RWMutex // Protects state and listeners
	state     State
	listeners map[int]Listener
	nextID    int
}

// New creates a store starting from Initial(), or from initial if given
func New(initial ...State) *Store {
	s := Initial()
	if len(initial) > 0 {
		s = initial[0]
	}
	return &Store{
		state:     s,
		listeners: make(map[int]Listener),
	}
}

// State returns the current state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a to the current state and notifies listeners
func (s *Store) Dispatch(a Action) {
	if a == nil {
		return
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, a)
	s.state = next
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	change := Change{Prev: prev, Next: next, Action: a}
	for _, l := range listeners {
		l(change)
	}
}

// Subscribe registers l and returns a function that removes it
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// snapshotListeners returns listeners in subscription order. Caller holds mu.
func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}
