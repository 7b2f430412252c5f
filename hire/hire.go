// Package hire implements the atomic hire transition: one winning bid,
// all sibling bids rejected, the gig assigned — all in a single
// transaction, with a best-effort notification after commit.
package hire

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gigspace/models"
)

var (
	ErrBidNotFound = errors.New("bid not found")
	ErrGigNotFound = errors.New("gig not found")
	ErrNotOwner    = errors.New("not authorized to hire for this gig")
	ErrGigNotOpen  = errors.New("gig is already assigned")
)

// Store is the record access the coordinator needs. All methods are
// expected to run inside the transaction context handed to them.
type Store interface {
	BidByID(ctx context.Context, bidID string) (*models.Bid, error)
	GigByID(ctx context.Context, gigID string) (*models.Gig, error)
	MarkBidHired(ctx context.Context, bidID string) error
	RejectCompetingBids(ctx context.Context, gigID, winnerBidID string) error
	// AssignGig must only match a gig that is still open and report
	// ErrGigNotOpen otherwise, so a racing hire loses cleanly.
	AssignGig(ctx context.Context, gigID, winnerBidID string) error
}

// TxnRunner executes fn as one atomic unit: every write fn issues becomes
// durable together, or none do. An error from fn aborts the whole unit.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier delivers an event to a user's live sessions. Best-effort,
// at-most-once per call; must not block.
type Notifier interface {
	Notify(userID string, event models.HiredNotification)
}

type Coordinator struct {
	store    Store
	txn      TxnRunner
	notifier Notifier
}

func New(store Store, txn TxnRunner, notifier Notifier) *Coordinator {
	return &Coordinator{store: store, txn: txn, notifier: notifier}
}

// Hire selects the bid identified by bidID as the winner of its gig.
// Preconditions are checked in order inside the transaction: the bid
// exists, its gig exists, actorID owns the gig, and the gig is still
// open. Any violation aborts with no side effects.
func (c *Coordinator) Hire(ctx context.Context, actorID, bidID string) (*models.Gig, *models.Bid, error) {
	var (
		gig *models.Gig
		bid *models.Bid
	)

	err := c.txn.WithTransaction(ctx, func(ctx context.Context) error {
		b, err := c.store.BidByID(ctx, bidID)
		if err != nil {
			return err
		}

		g, err := c.store.GigByID(ctx, b.GigID)
		if err != nil {
			return err
		}

		if g.OwnerID != actorID {
			return ErrNotOwner
		}
		if g.Status != models.GigOpen {
			return ErrGigNotOpen
		}

		if err := c.store.MarkBidHired(ctx, b.BidID); err != nil {
			return err
		}
		if err := c.store.RejectCompetingBids(ctx, g.GigID, b.BidID); err != nil {
			return err
		}
		if err := c.store.AssignGig(ctx, g.GigID, b.BidID); err != nil {
			return err
		}

		b.Status = models.BidHired
		g.Status = models.GigAssigned
		g.HiredBidID = b.BidID
		gig, bid = g, b
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Post-commit, fire-and-forget. A failed push never unwinds the hire.
	if c.notifier != nil {
		c.notifier.Notify(bid.FreelancerID, models.HiredNotification{
			GigTitle: gig.Title,
			GigID:    gig.GigID,
			Budget:   gig.Budget,
			Message:  fmt.Sprintf("Congratulations! You have been hired for %q!", gig.Title),
		})
	} else {
		log.Printf("hire: no notifier configured, skipping push for %s", bid.FreelancerID)
	}

	return gig, bid, nil
}
