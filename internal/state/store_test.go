package state

import (
	"sync"
	"testing"
)

func TestStore_DispatchNotifiesInOrder(t *testing.T) {
	s := New()

	var got []Action
	unsubscribe := s.Subscribe(func(c Change) {
		got = append(got, c.Action)
	})

	s.Dispatch(SetQuery{Query: "ba"})
	s.Dispatch(SetLoading{Loading: true})
	s.Dispatch(SetResults{Movies: batman})

	if len(got) != 3 {
		t.Fatalf("listener saw %d actions, want 3", len(got))
	}
	if _, ok := got[2].(SetResults); !ok {
		t.Fatalf("last action = %T, want SetResults", got[2])
	}

	unsubscribe()
	unsubscribe() // safe to call twice
	s.Dispatch(SetQuery{Query: "bat"})
	if len(got) != 3 {
		t.Fatal("listener called after unsubscribe")
	}

	st := s.State()
	if st.SearchQuery != "bat" || len(st.Movies) != 2 || st.Loading {
		t.Fatalf("state = %#v", st)
	}
}

func TestStore_ChangeCarriesPrevAndNext(t *testing.T) {
	s := New()
	s.Dispatch(SetRating{ID: "tt1", Rating: 2})

	var change Change
	s.Subscribe(func(c Change) { change = c })
	s.Dispatch(SetRating{ID: "tt1", Rating: 4})

	if change.Prev.Rating("tt1") != 2 || change.Next.Rating("tt1") != 4 {
		t.Fatalf("change = prev %d next %d, want 2 -> 4", change.Prev.Rating("tt1"), change.Next.Rating("tt1"))
	}
}

func TestStore_NewWithInitialState(t *testing.T) {
	initial := Initial()
	initial.SearchQuery = "seed"
	if got := New(initial).State().SearchQuery; got != "seed" {
		t.Fatalf("SearchQuery = %q, want seed", got)
	}
}

func TestStore_IsolatedInstances(t *testing.T) {
	a, b := New(), New()
	a.Dispatch(SetQuery{Query: "a"})
	if b.State().SearchQuery != "" {
		t.Fatal("stores share state")
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := New()
	var mu sync.Mutex
	count := 0
	s.Subscribe(func(Change) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(SetLoading{Loading: true})
			s.Dispatch(SetResults{})
		}()
	}
	wg.Wait()

	if count != 100 {
		t.Fatalf("listener called %d times, want 100", count)
	}
	if s.State().Loading {
		t.Fatal("Loading = true after every goroutine finished with SetResults")
	}
}

func TestStore_NilActionIgnored(t *testing.T) {
	s := New()
	called := false
	s.Subscribe(func(Change) { called = true })
	s.Dispatch(nil)
	if called {
		t.Fatal("listener called for nil action")
	}
}
