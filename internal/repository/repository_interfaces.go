package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PackageTypesRepositoryInterface defines the package catalog storage operations.
type PackageTypesRepositoryInterface interface {
	ListByLocation(ctx context.Context, locationID string) ([]PackageTypeDocument, error)
	GetByID(ctx context.Context, locationID string, id primitive.ObjectID) (*PackageTypeDocument, error)
	Create(ctx context.Context, doc *PackageTypeDocument, createdBy string) (*PackageTypeDocument, error)
	Update(ctx context.Context, locationID string, id primitive.ObjectID, fields PackageTypeFields, updatedBy string) (*PackageTypeDocument, error)
	SetStock(ctx context.Context, locationID string, id primitive.ObjectID, quantity int, updatedBy string) (*PackageTypeDocument, error)
	Delete(ctx context.Context, locationID string, id primitive.ObjectID) error
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
