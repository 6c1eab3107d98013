package tui

import "github.com/mmcdole/reel/internal/state"

// StoreObserver forwards store changes to a channel for Bubble Tea.
// Only the newest snapshot is kept; the model always renders the latest.
type StoreObserver struct {
	ch          chan state.State
	unsubscribe func()
}

// NewStoreObserver subscribes to store
func NewStoreObserver(store *state.Store) *StoreObserver {
	o := &StoreObserver{ch: make(chan state.State, 1)}
	o.unsubscribe = store.Subscribe(o.onChange)
	return o
}

// Updates returns the snapshot channel
func (o *StoreObserver) Updates() <-chan state.State {
	return o.ch
}

// Close stops observing the store
func (o *StoreObserver) Close() {
	o.unsubscribe()
}

// onChange replaces any unread snapshot with the new one (never blocks).
// Listeners run one at a time, so only the reader competes for the slot.
func (o *StoreObserver) onChange(c state.Change) {
	for {
		select {
		case o.ch <- c.Next:
			return
		default:
		}
		select {
		case <-o.ch:
		default:
		}
	}
}
