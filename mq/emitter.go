package mq

import (
	"context"
	"encoding/json"
	"log"

	"gigspace/db"
	"gigspace/models"
	"gigspace/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

const indexingChannel = "indexing-events"

// Emit publishes an indexing event to Redis. Delivery is best-effort;
// failures are logged and never surfaced to the caller.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), indexingChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
		return
	}
}

// StartIndexingWorker consumes indexing events and keeps the Redis gig
// summary cache in sync with MongoDB.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, indexingChannel)
	ch := sub.Channel()

	log.Println("[IndexingWorker] Listening for indexing events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}

		if err := indexEntity(ctx, event); err != nil {
			log.Printf("[IndexingWorker] index error for %s/%s: %v",
				event.EntityType, event.EntityId, err)
		}
	}
}

func indexEntity(ctx context.Context, event models.Index) error {
	if event.EntityType != "gig" {
		return nil
	}

	var gig models.Gig
	if err := db.GigsCollection.FindOne(ctx, bson.M{"gigid": event.EntityId}).Decode(&gig); err != nil {
		return err
	}

	summary, err := json.Marshal(map[string]any{
		"title":  gig.Title,
		"budget": gig.Budget,
		"status": gig.Status,
	})
	if err != nil {
		return err
	}
	return rdx.RdxHset("gigs:index", gig.GigID, string(summary))
}
