package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StateDbName  = "aurumbay"
	StateColName = "state"
)

// MongoStore mirrors the snapshot into a remote document store: one document
// per namespace, replaced wholesale on every save.
type MongoStore struct {
	client *mongo.Client
}

func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{client: client}
}

func (ms *MongoStore) collection() *mongo.Collection {
	return ms.client.Database(StateDbName).Collection(StateColName)
}

func (ms *MongoStore) Load(ctx context.Context) (*Snapshot, error) {
	var doc struct {
		ID        string    `bson:"_id"`
		State     Snapshot  `bson:"state"`
		UpdatedAt time.Time `bson:"updated_at"`
	}

	err := ms.collection().FindOne(ctx, bson.M{"_id": Namespace}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state document: %w", err)
	}
	return &doc.State, nil
}

func (ms *MongoStore) Save(ctx context.Context, snap *Snapshot) error {
	update := bson.M{
		"$set": bson.M{
			"state":      snap,
			"updated_at": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := ms.collection().UpdateOne(ctx, bson.M{"_id": Namespace}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert state document: %w", err)
	}
	return nil
}
