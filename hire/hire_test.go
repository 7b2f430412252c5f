package hire

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gigspace/models"
)

// memStore keeps gigs and bids in maps, guarded by a mutex so the
// concurrency test can hammer it from two goroutines.
type memStore struct {
	mu   sync.Mutex
	gigs map[string]models.Gig
	bids map[string]models.Bid

	failReject bool
}

func newMemStore() *memStore {
	return &memStore{
		gigs: make(map[string]models.Gig),
		bids: make(map[string]models.Bid),
	}
}

func (s *memStore) BidByID(_ context.Context, bidID string) (*models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bids[bidID]
	if !ok {
		return nil, ErrBidNotFound
	}
	return &b, nil
}

func (s *memStore) GigByID(_ context.Context, gigID string) (*models.Gig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gigs[gigID]
	if !ok {
		return nil, ErrGigNotFound
	}
	return &g, nil
}

func (s *memStore) MarkBidHired(_ context.Context, bidID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bids[bidID]
	b.Status = models.BidHired
	s.bids[bidID] = b
	return nil
}

func (s *memStore) RejectCompetingBids(_ context.Context, gigID, winnerBidID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReject {
		return errors.New("write failed")
	}
	for id, b := range s.bids {
		if b.GigID == gigID && id != winnerBidID {
			b.Status = models.BidRejected
			s.bids[id] = b
		}
	}
	return nil
}

func (s *memStore) AssignGig(_ context.Context, gigID, winnerBidID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gigs[gigID]
	if !ok || g.Status != models.GigOpen {
		return ErrGigNotOpen
	}
	g.Status = models.GigAssigned
	g.HiredBidID = winnerBidID
	s.gigs[gigID] = g
	return nil
}

func (s *memStore) snapshot() (map[string]models.Gig, map[string]models.Bid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gigs := make(map[string]models.Gig, len(s.gigs))
	for k, v := range s.gigs {
		gigs[k] = v
	}
	bids := make(map[string]models.Bid, len(s.bids))
	for k, v := range s.bids {
		bids[k] = v
	}
	return gigs, bids
}

func (s *memStore) restore(gigs map[string]models.Gig, bids map[string]models.Bid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gigs = gigs
	s.bids = bids
}

// memRunner serializes transactions and restores the pre-transaction
// snapshot when the body errors, modelling full-rollback semantics.
type memRunner struct {
	store *memStore
	mu    sync.Mutex
}

func (r *memRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gigs, bids := r.store.snapshot()
	if err := fn(ctx); err != nil {
		r.store.restore(gigs, bids)
		return err
	}
	return nil
}

type recordedEvent struct {
	userID string
	event  models.HiredNotification
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Notify(userID string, event models.HiredNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{userID: userID, event: event})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func seedTwoBids(store *memStore) {
	store.gigs["g1"] = models.Gig{
		GigID:   "g1",
		Title:   "Build a landing page",
		Budget:  500,
		OwnerID: "u1",
		Status:  models.GigOpen,
	}
	store.bids["b1"] = models.Bid{
		BidID: "b1", GigID: "g1", FreelancerID: "f1",
		BidAmount: 450, Status: models.BidPending, CreatedAt: time.Now(),
	}
	store.bids["b2"] = models.Bid{
		BidID: "b2", GigID: "g1", FreelancerID: "f2",
		BidAmount: 480, Status: models.BidPending, CreatedAt: time.Now(),
	}
}

func newTestCoordinator(store *memStore, notifier Notifier) *Coordinator {
	return New(store, &memRunner{store: store}, notifier)
}

func TestHireAssignsWinnerAndRejectsSiblings(t *testing.T) {
	store := newMemStore()
	seedTwoBids(store)
	notifier := &recordingNotifier{}
	coord := newTestCoordinator(store, notifier)

	gig, bid, err := coord.Hire(context.Background(), "u1", "b1")
	if err != nil {
		t.Fatalf("hire failed: %v", err)
	}

	if bid.Status != models.BidHired {
		t.Errorf("winning bid status = %q, want %q", bid.Status, models.BidHired)
	}
	if gig.Status != models.GigAssigned || gig.HiredBidID != "b1" {
		t.Errorf("gig = %q/%q, want assigned/b1", gig.Status, gig.HiredBidID)
	}

	if got := store.bids["b1"].Status; got != models.BidHired {
		t.Errorf("stored b1 status = %q, want hired", got)
	}
	if got := store.bids["b2"].Status; got != models.BidRejected {
		t.Errorf("stored b2 status = %q, want rejected", got)
	}
	if got := store.gigs["g1"]; got.Status != models.GigAssigned || got.HiredBidID != "b1" {
		t.Errorf("stored gig = %q/%q, want assigned/b1", got.Status, got.HiredBidID)
	}

	if notifier.count() != 1 {
		t.Fatalf("got %d notifications, want 1", notifier.count())
	}
	ev := notifier.events[0]
	if ev.userID != "f1" {
		t.Errorf("notified %q, want f1", ev.userID)
	}
	if ev.event.GigID != "g1" || ev.event.GigTitle != "Build a landing page" || ev.event.Budget != 500 {
		t.Errorf("unexpected notification payload: %+v", ev.event)
	}
}

func TestHireByNonOwnerForbidden(t *testing.T) {
	store := newMemStore()
	seedTwoBids(store)
	notifier := &recordingNotifier{}
	coord := newTestCoordinator(store, notifier)

	_, _, err := coord.Hire(context.Background(), "f1", "b1")
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}

	if got := store.bids["b1"].Status; got != models.BidPending {
		t.Errorf("b1 status = %q, want pending", got)
	}
	if got := store.gigs["g1"].Status; got != models.GigOpen {
		t.Errorf("gig status = %q, want open", got)
	}
	if notifier.count() != 0 {
		t.Errorf("got %d notifications, want 0", notifier.count())
	}
}

func TestHireUnknownBid(t *testing.T) {
	store := newMemStore()
	seedTwoBids(store)
	coord := newTestCoordinator(store, &recordingNotifier{})

	_, _, err := coord.Hire(context.Background(), "u1", "nope")
	if !errors.Is(err, ErrBidNotFound) {
		t.Fatalf("err = %v, want ErrBidNotFound", err)
	}
}

func TestHireOrphanedBid(t *testing.T) {
	store := newMemStore()
	store.bids["b9"] = models.Bid{BidID: "b9", GigID: "gone", FreelancerID: "f1", Status: models.BidPending}
	coord := newTestCoordinator(store, &recordingNotifier{})

	_, _, err := coord.Hire(context.Background(), "u1", "b9")
	if !errors.Is(err, ErrGigNotFound) {
		t.Fatalf("err = %v, want ErrGigNotFound", err)
	}
}

func TestHireOnAssignedGigConflicts(t *testing.T) {
	store := newMemStore()
	seedTwoBids(store)
	coord := newTestCoordinator(store, &recordingNotifier{})

	if _, _, err := coord.Hire(context.Background(), "u1", "b1"); err != nil {
		t.Fatalf("first hire failed: %v", err)
	}

	_, _, err := coord.Hire(context.Background(), "u1", "b2")
	if !errors.Is(err, ErrGigNotOpen) {
		t.Fatalf("err = %v, want ErrGigNotOpen", err)
	}

	// The loser must not have disturbed the committed state.
	if got := store.bids["b1"].Status; got != models.BidHired {
		t.Errorf("b1 status = %q, want hired", got)
	}
	if got := store.gigs["g1"].HiredBidID; got != "b1" {
		t.Errorf("hiredBidId = %q, want b1", got)
	}
}

func TestHireRollsBackOnWriteFailure(t *testing.T) {
	store := newMemStore()
	seedTwoBids(store)
	store.failReject = true
	notifier := &recordingNotifier{}
	coord := newTestCoordinator(store, notifier)

	_, _, err := coord.Hire(context.Background(), "u1", "b1")
	if err == nil {
		t.Fatal("expected hire to fail")
	}

	// Full rollback: the winning-bid write that preceded the failure must
	// not be visible either.
	if got := store.bids["b1"].Status; got != models.BidPending {
		t.Errorf("b1 status = %q, want pending", got)
	}
	if got := store.bids["b2"].Status; got != models.BidPending {
		t.Errorf("b2 status = %q, want pending", got)
	}
	if got := store.gigs["g1"].Status; got != models.GigOpen {
		t.Errorf("gig status = %q, want open", got)
	}
	if notifier.count() != 0 {
		t.Errorf("got %d notifications, want 0", notifier.count())
	}
}

func TestConcurrentHireExactlyOneWinner(t *testing.T) {
	store := newMemStore()
	seedTwoBids(store)
	notifier := &recordingNotifier{}
	coord := newTestCoordinator(store, notifier)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, bidID := range []string{"b1", "b2"} {
		wg.Add(1)
		go func(i int, bidID string) {
			defer wg.Done()
			_, _, errs[i] = coord.Hire(context.Background(), "u1", bidID)
		}(i, bidID)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrGigNotOpen):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("wins = %d, conflicts = %d; want exactly one of each", wins, conflicts)
	}

	gig := store.gigs["g1"]
	if gig.Status != models.GigAssigned || gig.HiredBidID == "" {
		t.Fatalf("gig = %+v, want assigned with a hired bid", gig)
	}

	var hired, rejected, pending int
	for _, b := range store.bids {
		switch b.Status {
		case models.BidHired:
			hired++
			if b.BidID != gig.HiredBidID {
				t.Errorf("hired bid %q does not match gig reference %q", b.BidID, gig.HiredBidID)
			}
		case models.BidRejected:
			rejected++
		case models.BidPending:
			pending++
		}
	}
	if hired != 1 || rejected != 1 || pending != 0 {
		t.Fatalf("bid statuses hired=%d rejected=%d pending=%d; want 1/1/0", hired, rejected, pending)
	}

	if notifier.count() != 1 {
		t.Errorf("got %d notifications, want 1", notifier.count())
	}
}
