package hire

import (
	"context"
	"time"

	"gigspace/db"
	"gigspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore reads and writes gigs and bids through the shared
// collections. It is safe to use inside a session context.
type MongoStore struct {
	Gigs *mongo.Collection
	Bids *mongo.Collection
}

func NewMongoStore() *MongoStore {
	return &MongoStore{Gigs: db.GigsCollection, Bids: db.BidsCollection}
}

func (s *MongoStore) BidByID(ctx context.Context, bidID string) (*models.Bid, error) {
	var bid models.Bid
	if err := s.Bids.FindOne(ctx, bson.M{"bidid": bidID}).Decode(&bid); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (s *MongoStore) GigByID(ctx context.Context, gigID string) (*models.Gig, error) {
	var gig models.Gig
	if err := s.Gigs.FindOne(ctx, bson.M{"gigid": gigID}).Decode(&gig); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (s *MongoStore) MarkBidHired(ctx context.Context, bidID string) error {
	_, err := s.Bids.UpdateOne(ctx,
		bson.M{"bidid": bidID},
		bson.M{"$set": bson.M{"status": models.BidHired}},
	)
	return err
}

func (s *MongoStore) RejectCompetingBids(ctx context.Context, gigID, winnerBidID string) error {
	_, err := s.Bids.UpdateMany(ctx,
		bson.M{"gigid": gigID, "bidid": bson.M{"$ne": winnerBidID}},
		bson.M{"$set": bson.M{"status": models.BidRejected}},
	)
	return err
}

func (s *MongoStore) AssignGig(ctx context.Context, gigID, winnerBidID string) error {
	// Compare-and-swap on the status field: only an open gig matches, so
	// of two racing hires exactly one flips it and the other aborts.
	res, err := s.Gigs.UpdateOne(ctx,
		bson.M{"gigid": gigID, "status": models.GigOpen},
		bson.M{"$set": bson.M{
			"status":     models.GigAssigned,
			"hiredBidId": winnerBidID,
			"updatedAt":  time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrGigNotOpen
	}
	return nil
}

// SessionRunner runs a function inside a MongoDB multi-document
// transaction. The session is always released, whichever way the
// transaction ends.
type SessionRunner struct {
	client *mongo.Client
}

func NewSessionRunner(client *mongo.Client) *SessionRunner {
	return &SessionRunner{client: client}
}

func (s *SessionRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
