// Package bids implements bid submission and listing for gigs, plus the
// HTTP surface for the hire operation.
package bids

import (
	"context"
	"errors"
	"time"

	"gigspace/models"
	"gigspace/utils"
)

var (
	ErrGigNotFound  = errors.New("gig not found")
	ErrGigClosed    = errors.New("gig is no longer open")
	ErrOwnBid       = errors.New("cannot bid on your own gig")
	ErrDuplicateBid = errors.New("a bid for this gig already exists")
	ErrNotOwner     = errors.New("not authorized to view these bids")
)

// Store is the bid/gig access submission and listing need. InsertBid must
// report ErrDuplicateBid when the (gig, freelancer) uniqueness constraint
// fires — the constraint, not the application, is the source of truth, so
// racing submissions cannot both land.
type Store interface {
	GigByID(ctx context.Context, gigID string) (*models.Gig, error)
	InsertBid(ctx context.Context, bid *models.Bid) error
	BidsByGig(ctx context.Context, gigID string) ([]models.Bid, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Submit validates and inserts a new pending bid.
func (s *Service) Submit(ctx context.Context, freelancerID, freelancerName, gigID, message string, bidAmount float64) (*models.Bid, error) {
	gig, err := s.store.GigByID(ctx, gigID)
	if err != nil {
		return nil, err
	}

	if gig.Status != models.GigOpen {
		return nil, ErrGigClosed
	}
	if gig.OwnerID == freelancerID {
		return nil, ErrOwnBid
	}

	bid := &models.Bid{
		BidID:          "b" + utils.GenerateRandomString(14),
		GigID:          gigID,
		FreelancerID:   freelancerID,
		FreelancerName: freelancerName,
		Message:        message,
		BidAmount:      bidAmount,
		Status:         models.BidPending,
		CreatedAt:      time.Now(),
	}

	if err := s.store.InsertBid(ctx, bid); err != nil {
		return nil, err
	}
	return bid, nil
}

// ListForGig returns the gig's bids, newest first. Only the gig owner may
// see them.
func (s *Service) ListForGig(ctx context.Context, actorID, gigID string) ([]models.Bid, error) {
	gig, err := s.store.GigByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if gig.OwnerID != actorID {
		return nil, ErrNotOwner
	}
	return s.store.BidsByGig(ctx, gigID)
}
