// Package loader owns the snapshot the admin client shows. A load shows the
// local cache first, then replaces it with the remote snapshot, and falls
// back to the defaults only when neither is available.
package loader

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/portfolio"
)

// Phase is the stage of the current load cycle.
type Phase string

// Load cycle phases, in order. A cycle passes CACHE_HYDRATED only when the
// cache held a complete snapshot.
const (
	PhaseInit          Phase = "INIT"
	PhaseCacheHydrated Phase = "CACHE_HYDRATED"
	PhaseRemotePending Phase = "REMOTE_PENDING"
	PhaseRemoteOK      Phase = "REMOTE_OK"
	PhaseRemoteFailed  Phase = "REMOTE_FAILED"
	PhaseSettled       Phase = "SETTLED"
)

// State is what subscribers see. Snapshot is nil only before the first
// cycle has produced something to show; each State carries its own copy.
type State struct {
	Snapshot *portfolio.Snapshot
	Loading  bool
	Err      error // last remote failure, for display only
	Phase    Phase
}

// SnapshotCache is the local cache the loader reads and refreshes.
type SnapshotCache interface {
	ReadSnapshot() (portfolio.Snapshot, bool)
	WriteSnapshot(s portfolio.Snapshot) error
}

// Fetcher reads the snapshot from the web service.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (portfolio.Snapshot, error)
}

// Loader is safe for concurrent use. Every cycle takes a sequence number;
// a cycle that is no longer the latest drops its results.
type Loader struct {
	cache  SnapshotCache
	remote Fetcher

	mu      sync.Mutex
	state   State
	seq     uint64
	subs    map[int]func(State)
	nextSub int
}

// New creates a loader. It does not load anything until Load is called.
func New(cache SnapshotCache, remote Fetcher) *Loader {
	return &Loader{
		cache:  cache,
		remote: remote,
		state:  State{Phase: PhaseInit},
		subs:   make(map[int]func(State)),
	}
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.copyState()
}

// Subscribe registers fn for every state change and returns a function that
// removes it. fn runs outside the loader lock and may call State.
func (l *Loader) Subscribe(fn func(State)) func() {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
		})
	}
}

// Load runs one cycle and returns the state it settled in. If a newer
// cycle started meanwhile, the returned state is that cycle's current state.
func (l *Loader) Load(ctx context.Context) State {
	seq := l.begin()

	if cached, ok := l.cache.ReadSnapshot(); ok {
		l.update(seq, func(st *State) {
			st.Snapshot = &cached
			st.Phase = PhaseCacheHydrated
		})
	}

	l.update(seq, func(st *State) { st.Phase = PhaseRemotePending })

	fresh, err := l.remote.FetchSnapshot(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("remote snapshot unavailable")
		l.fail(seq, err)

		return l.State()
	}

	fresh.Normalize()
	l.succeed(seq, fresh)

	return l.State()
}

// Refresh starts a new cycle. Any cycle still in flight becomes stale.
func (l *Loader) Refresh(ctx context.Context) State {
	return l.Load(ctx)
}

// Publish shows s right away, as after a save. In-flight cycles become stale
// so an older remote answer cannot replace it.
func (l *Loader) Publish(s portfolio.Snapshot) {
	s = s.Clone()
	s.Normalize()

	l.mu.Lock()
	l.seq++
	l.state = State{Snapshot: &s, Phase: PhaseSettled}
	st, subs := l.copyState(), l.subscribers()
	l.mu.Unlock()

	notify(subs, st)
}

func (l *Loader) begin() uint64 {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.state.Loading = true
	l.state.Err = nil
	l.state.Phase = PhaseInit
	st, subs := l.copyState(), l.subscribers()
	l.mu.Unlock()

	notify(subs, st)

	return seq
}

// update applies fn if seq is still the latest cycle and notifies.
func (l *Loader) update(seq uint64, fn func(st *State)) bool {
	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		log.Debug().Uint64("cycle", seq).Msg("stale load cycle discarded")

		return false
	}

	fn(&l.state)
	st, subs := l.copyState(), l.subscribers()
	l.mu.Unlock()

	notify(subs, st)

	return true
}

func (l *Loader) succeed(seq uint64, fresh portfolio.Snapshot) {
	ok := l.update(seq, func(st *State) {
		st.Snapshot = &fresh
		st.Phase = PhaseRemoteOK

		// under the lock, so a newer cycle cannot write between the check and the write
		if err := l.cache.WriteSnapshot(fresh); err != nil {
			log.Warn().Err(err).Msg("failed to refresh local cache")
		}
	})
	if !ok {
		return
	}

	l.update(seq, func(st *State) {
		st.Loading = false
		st.Phase = PhaseSettled
	})
}

func (l *Loader) fail(seq uint64, err error) {
	ok := l.update(seq, func(st *State) {
		st.Err = err
		st.Phase = PhaseRemoteFailed

		if st.Snapshot == nil {
			def := portfolio.Default()
			st.Snapshot = &def
		}
	})
	if !ok {
		return
	}

	l.update(seq, func(st *State) {
		st.Loading = false
		st.Phase = PhaseSettled
	})
}

// copyState must be called with mu held.
func (l *Loader) copyState() State {
	return cloneState(l.state)
}

func cloneState(st State) State {
	if st.Snapshot != nil {
		s := st.Snapshot.Clone()
		st.Snapshot = &s
	}

	return st
}

// subscribers must be called with mu held.
func (l *Loader) subscribers() []func(State) {
	out := make([]func(State), 0, len(l.subs))
	for _, fn := range l.subs {
		out = append(out, fn)
	}

	return out
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(cloneState(st))
	}
}
