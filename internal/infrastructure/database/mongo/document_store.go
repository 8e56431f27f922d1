// internal/infrastructure/database/mongo/document_store.go
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
)

// DocumentStore maps each logical collection onto a Mongo collection whose
// _id is a UUIDv7 string, so _id order is creation order
type DocumentStore struct {
	db *mongo.Database
}

// NewDocumentStore creates a document store on db
func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{db: db}
}

func notFound(collection, id string) error {
	return fmt.Errorf("%s/%s: %w", collection, id, remote.ErrNotFound)
}

// toRecord strips _id and renders the rest as relaxed extended JSON, which
// is plain JSON for the value types the storefront writes
func toRecord(doc bson.M) (remote.Record, error) {
	id, _ := doc["_id"].(string)
	delete(doc, "_id")
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return remote.Record{}, fmt.Errorf("encode document %s: %w", id, err)
	}
	return remote.Record{ID: id, Data: data}, nil
}

// List implements remote.Store
func (s *DocumentStore) List(ctx context.Context, collection string) ([]remote.Record, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var records []remote.Record
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		rec, err := toRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	return records, nil
}

// Get implements remote.Store
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (remote.Record, error) {
	var doc bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return remote.Record{}, notFound(collection, id)
	}
	if err != nil {
		return remote.Record{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return toRecord(doc)
}

// Create implements remote.Store
func (s *DocumentStore) Create(ctx context.Context, collection string, payload any) (remote.Record, error) {
	data, err := remote.Marshal(payload)
	if err != nil {
		return remote.Record{}, err
	}
	var doc bson.M
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return remote.Record{}, fmt.Errorf("payload is not a JSON object: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return remote.Record{}, fmt.Errorf("generate id: %w", err)
	}
	doc["_id"] = id.String()

	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return remote.Record{}, fmt.Errorf("failed to create in %s: %w", collection, err)
	}
	return remote.Record{ID: id.String(), Data: data}, nil
}

// Patch implements remote.Store with $set
func (s *DocumentStore) Patch(ctx context.Context, collection, id string, partial map[string]any) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": partial})
	if err != nil {
		return fmt.Errorf("failed to patch %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return notFound(collection, id)
	}
	return nil
}

// Delete implements remote.Store
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return notFound(collection, id)
	}
	return nil
}
