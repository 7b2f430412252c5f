package bids

import (
	"context"

	"gigspace/db"
	"gigspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStore struct {
	gigs *mongo.Collection
	bids *mongo.Collection
}

func newMongoStore() *mongoStore {
	return &mongoStore{gigs: db.GigsCollection, bids: db.BidsCollection}
}

func (s *mongoStore) GigByID(ctx context.Context, gigID string) (*models.Gig, error) {
	var gig models.Gig
	if err := s.gigs.FindOne(ctx, bson.M{"gigid": gigID}).Decode(&gig); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (s *mongoStore) InsertBid(ctx context.Context, bid *models.Bid) error {
	if _, err := s.bids.InsertOne(ctx, bid); err != nil {
		// The unique {gigid, freelancerId} index catches duplicates, even
		// when two submissions race.
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateBid
		}
		return err
	}
	return nil
}

func (s *mongoStore) BidsByGig(ctx context.Context, gigID string) ([]models.Bid, error) {
	cursor, err := s.bids.Find(ctx, bson.M{"gigid": gigID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.Bid
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		results = []models.Bid{}
	}
	return results, nil
}
