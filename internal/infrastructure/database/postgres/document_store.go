// internal/infrastructure/database/postgres/document_store.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
)

// Document is one record of a logical collection
type Document struct {
	Collection string         `gorm:"primaryKey;size:100"`
	ID         string         `gorm:"primaryKey;size:64"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName pins the table name
func (Document) TableName() string {
	return "documents"
}

// DocumentStore implements remote.Store on a single jsonb table
type DocumentStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDocumentStore creates a document store on db
func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func notFound(collection, id string) error {
	return fmt.Errorf("%s/%s: %w", collection, id, remote.ErrNotFound)
}

// List implements remote.Store
func (s *DocumentStore) List(ctx context.Context, collection string) ([]remote.Record, error) {
	var docs []Document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at, id").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	records := make([]remote.Record, len(docs))
	for i, d := range docs {
		records[i] = remote.Record{ID: d.ID, Data: json.RawMessage(d.Data)}
	}
	return records, nil
}

// Get implements remote.Store
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (remote.Record, error) {
	var d Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return remote.Record{}, notFound(collection, id)
	}
	if err != nil {
		return remote.Record{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return remote.Record{ID: d.ID, Data: json.RawMessage(d.Data)}, nil
}

// Create implements remote.Store
func (s *DocumentStore) Create(ctx context.Context, collection string, payload any) (remote.Record, error) {
	data, err := remote.Marshal(payload)
	if err != nil {
		return remote.Record{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return remote.Record{}, fmt.Errorf("generate id: %w", err)
	}

	now := s.now()
	d := Document{
		Collection: collection,
		ID:         id.String(),
		Data:       datatypes.JSON(data),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(&d).Error; err != nil {
		return remote.Record{}, fmt.Errorf("failed to create in %s: %w", collection, err)
	}
	return remote.Record{ID: d.ID, Data: data}, nil
}

// Patch implements remote.Store; fields merge into the stored document
// inside one statement, so concurrent patches of different fields both land
func (s *DocumentStore) Patch(ctx context.Context, collection, id string, partial map[string]any) error {
	patch, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}

	res := s.db.WithContext(ctx).
		Model(&Document{}).
		Where("collection = ? AND id = ?", collection, id).
		Updates(map[string]any{
			"data":       gorm.Expr("data || ?::jsonb", string(patch)),
			"updated_at": s.now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to patch %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(collection, id)
	}
	return nil
}

// Delete implements remote.Store
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&Document{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(collection, id)
	}
	return nil
}
