package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/casaluna/casaluna/internal/domain/auth"
)

// Snapshot is the externally visible session state.
// Loading is true from construction until the first resolution settles;
// afterwards User is nil exactly when the session is anonymous.
type Snapshot struct {
	User    *domainauth.User
	Loading bool
}

// StoreOptions groups dependencies for Store.
type StoreOptions struct {
	// Resolve looks up the currently authenticated user. Any error or a
	// nil user resolves to anonymous.
	Resolve func(ctx context.Context) (*domainauth.User, error)
	// SignOut revokes the current session with the provider. Optional;
	// failures are logged and never block the local transition.
	SignOut func(ctx context.Context) error
	// Events feeds auth events into the store. Required.
	Events *Broker
	Logger *slog.Logger
}

// Store tracks the authenticated user reactively. All state transitions are
// serialized by a single goroutine; refreshes run concurrently but their
// results are sequenced against auth events, so a refresh that was in
// flight when a newer event arrived is discarded rather than applied.
//
// A Store is always constructed and injected explicitly, never shared as a
// package singleton.
type Store struct {
	resolve func(ctx context.Context) (*domainauth.User, error)
	signOut func(ctx context.Context) error
	broker  *Broker
	logger  *slog.Logger

	mu       sync.RWMutex
	snapshot Snapshot

	refreshCh chan struct{}
	started   bool
	startMu   sync.Mutex
	done      chan struct{}
}

// refreshResult carries the outcome of one resolution attempt, tagged with
// the event sequence it was started under.
type refreshResult struct {
	seq  uint64
	user *domainauth.User
}

// NewStore constructs a Store. The snapshot starts as loading until
// Start's deferred initial refresh settles.
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.Resolve == nil {
		return nil, errors.New("session store: Resolve is required")
	}
	if opts.Events == nil {
		return nil, errors.New("session store: Events broker is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		resolve:   opts.Resolve,
		signOut:   opts.SignOut,
		broker:    opts.Events,
		logger:    logger,
		snapshot:  Snapshot{Loading: true},
		refreshCh: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Start launches the state loop. The initial refresh is deferred by one
// scheduling tick so subscribers registered immediately after Start still
// observe the loading state. Start is idempotent; the loop exits when ctx
// is canceled.
func (s *Store) Start(ctx context.Context) {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.started {
		return
	}
	s.started = true

	events, cancel := s.broker.Subscribe()
	go s.loop(ctx, events, cancel)
}

// RefreshUser re-resolves the current user out of band. The result is
// subject to the same staleness rule as event-driven refreshes.
func (s *Store) RefreshUser() {
	select {
	case s.refreshCh <- struct{}{}:
	default:
	}
}

// SignOut revokes the provider session (best effort) and forces the store
// to anonymous by publishing a signed-out event, which also invalidates any
// refresh still in flight.
func (s *Store) SignOut(ctx context.Context) {
	if s.signOut != nil {
		if err := s.signOut(ctx); err != nil {
			s.logger.WarnContext(ctx, "session store: provider sign-out failed", "error", err)
		}
	}
	s.broker.Publish(domainauth.EventSignedOut, nil)
}

// Done is closed when the state loop has exited.
func (s *Store) Done() <-chan struct{} { return s.done }

func (s *Store) loop(ctx context.Context, events <-chan domainauth.Event, cancel func()) {
	defer close(s.done)
	defer cancel()

	// lastSeq is the sequence of the newest applied event; refresh results
	// started under an older sequence are stale and must be dropped.
	var lastSeq uint64
	results := make(chan refreshResult, 1)

	// One tick of deferral before the initial resolution.
	initial := time.After(0)

	for {
		select {
		case <-ctx.Done():
			return

		case <-initial:
			initial = nil
			s.beginRefresh(ctx, lastSeq, results)

		case <-s.refreshCh:
			s.beginRefresh(ctx, lastSeq, results)

		case evt, ok := <-events:
			if !ok {
				return
			}
			if evt.Seq <= lastSeq {
				continue
			}
			lastSeq = evt.Seq

			if evt.Type == domainauth.EventSignedOut || !evt.HasSession() {
				// No lookup: the answer is known synchronously.
				s.apply(Snapshot{User: nil, Loading: false})
				continue
			}
			s.beginRefresh(ctx, lastSeq, results)

		case res := <-results:
			if res.seq < lastSeq {
				// A newer event superseded this refresh while it was in
				// flight; its result no longer describes the current
				// session.
				continue
			}
			s.apply(Snapshot{User: res.user, Loading: false})
		}
	}
}

// beginRefresh resolves the user off the loop goroutine and reports back
// tagged with the sequence current at start time. Resolution failures are
// logged and resolve to anonymous.
func (s *Store) beginRefresh(ctx context.Context, seq uint64, results chan<- refreshResult) {
	go func() {
		user, err := s.resolve(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "session store: user resolution failed", "error", err)
			user = nil
		}
		select {
		case results <- refreshResult{seq: seq, user: user}:
		case <-ctx.Done():
		}
	}()
}

func (s *Store) apply(snap Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}
