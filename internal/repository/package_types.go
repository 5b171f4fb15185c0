package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/packaging-service/internal/domain/model"
)

var (
	// ErrPackageTypeNotFound is returned when no active package type matches the location and id.
	ErrPackageTypeNotFound = errors.New("package type not found")
	// ErrDuplicatePackageType is returned when an active package type with the same name exists at the location.
	ErrDuplicatePackageType = errors.New("package type already exists at location")
)

// PackageTypeDocument is a package type stocked at one location.
// Measures and prices are stored as Decimal128 to keep them exact.
type PackageTypeDocument struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	LocationID        string               `bson:"location_id" json:"location_id"`
	Name              string               `bson:"name" json:"name"`
	Type              string               `bson:"type" json:"type"`
	Length            primitive.Decimal128 `bson:"length" json:"-"`
	Breadth           primitive.Decimal128 `bson:"breadth" json:"-"`
	Height            primitive.Decimal128 `bson:"height" json:"-"`
	MaxWeight         primitive.Decimal128 `bson:"max_weight" json:"-"`
	PricePerUnit      primitive.Decimal128 `bson:"price_per_unit" json:"-"`
	AvailableQuantity int                  `bson:"available_quantity" json:"available_quantity"`
	Active            bool                 `bson:"active" json:"active"`
	Version           int                  `bson:"version" json:"version"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updated_at"`
	CreatedBy         string               `bson:"created_by,omitempty" json:"created_by,omitempty"`
	UpdatedBy         string               `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// PackageTypeFields holds the mutable attributes of a package type.
type PackageTypeFields struct {
	Name              string
	Type              string
	Size              model.PackageSize
	MaxWeight         decimal.Decimal
	PricePerUnit      decimal.Decimal
	AvailableQuantity int
}

// ToDecimal128 converts a decimal to its BSON representation.
func ToDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("convert %s to decimal128: %w", d, err)
	}
	return v, nil
}

// FromDecimal128 converts a BSON decimal back to a decimal.
// The zero Decimal128 value maps to zero.
func FromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	if v == (primitive.Decimal128{}) {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert decimal128 %s: %w", v, err)
	}
	return d, nil
}

// NewPackageTypeDocument builds a document for locationID from fields.
func NewPackageTypeDocument(locationID string, fields PackageTypeFields) (*PackageTypeDocument, error) {
	doc := &PackageTypeDocument{LocationID: locationID}
	if err := doc.apply(fields); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *PackageTypeDocument) apply(fields PackageTypeFields) error {
	values := []struct {
		src decimal.Decimal
		dst *primitive.Decimal128
	}{
		{fields.Size.Length, &d.Length},
		{fields.Size.Breadth, &d.Breadth},
		{fields.Size.Height, &d.Height},
		{fields.MaxWeight, &d.MaxWeight},
		{fields.PricePerUnit, &d.PricePerUnit},
	}
	for _, v := range values {
		converted, err := ToDecimal128(v.src)
		if err != nil {
			return err
		}
		*v.dst = converted
	}

	d.Name = fields.Name
	d.Type = fields.Type
	d.AvailableQuantity = fields.AvailableQuantity
	return nil
}

// ToPackageDimension converts the document into the descriptor consumed by the calculator.
func (d PackageTypeDocument) ToPackageDimension() (model.PackageDimension, error) {
	values := make([]decimal.Decimal, 5)
	for i, v := range []primitive.Decimal128{d.Length, d.Breadth, d.Height, d.MaxWeight, d.PricePerUnit} {
		converted, err := FromDecimal128(v)
		if err != nil {
			return model.PackageDimension{}, fmt.Errorf("package type %s: %w", d.ID.Hex(), err)
		}
		values[i] = converted
	}

	return model.PackageDimension{
		ID:   d.ID.Hex(),
		Name: d.Name,
		Type: d.Type,
		Size: model.PackageSize{
			Length:  values[0],
			Breadth: values[1],
			Height:  values[2],
		},
		MaxWeight:         values[3],
		PricePerUnit:      values[4],
		AvailableQuantity: d.AvailableQuantity,
	}, nil
}

// PackageTypesRepository provides access to the package_types collection.
type PackageTypesRepository struct {
	collection *mongo.Collection
}

// NewPackageTypesRepository creates a new package types repository.
func NewPackageTypesRepository(db *MongoDB) *PackageTypesRepository {
	return &PackageTypesRepository{
		collection: db.PackageTypes,
	}
}

// ListByLocation returns the active package types of a location, oldest first.
func (r *PackageTypesRepository) ListByLocation(ctx context.Context, locationID string) ([]PackageTypeDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"location_id": locationID, "active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	docs := []PackageTypeDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetByID returns an active package type of a location.
func (r *PackageTypesRepository) GetByID(ctx context.Context, locationID string, id primitive.ObjectID) (*PackageTypeDocument, error) {
	var doc PackageTypeDocument
	err := r.collection.FindOne(ctx, activeFilter(locationID, id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPackageTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create inserts a new active package type.
func (r *PackageTypesRepository) Create(ctx context.Context, doc *PackageTypeDocument, createdBy string) (*PackageTypeDocument, error) {
	now := time.Now().UTC()
	created := *doc
	created.ID = primitive.NewObjectID()
	created.Active = true
	created.Version = 1
	created.CreatedAt = now
	created.UpdatedAt = now
	created.CreatedBy = createdBy

	if _, err := r.collection.InsertOne(ctx, created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicatePackageType
		}
		return nil, err
	}
	return &created, nil
}

// Update replaces the mutable attributes of a package type and bumps its version.
func (r *PackageTypesRepository) Update(ctx context.Context, locationID string, id primitive.ObjectID, fields PackageTypeFields, updatedBy string) (*PackageTypeDocument, error) {
	var patch PackageTypeDocument
	if err := patch.apply(fields); err != nil {
		return nil, err
	}

	set := bson.M{
		"name":               patch.Name,
		"type":               patch.Type,
		"length":             patch.Length,
		"breadth":            patch.Breadth,
		"height":             patch.Height,
		"max_weight":         patch.MaxWeight,
		"price_per_unit":     patch.PricePerUnit,
		"available_quantity": patch.AvailableQuantity,
		"updated_at":         time.Now().UTC(),
	}
	if updatedBy != "" {
		set["updated_by"] = updatedBy
	}

	return r.findOneAndUpdate(ctx, locationID, id, bson.M{"$set": set, "$inc": bson.M{"version": 1}})
}

// SetStock overwrites the available quantity of a package type.
func (r *PackageTypesRepository) SetStock(ctx context.Context, locationID string, id primitive.ObjectID, quantity int, updatedBy string) (*PackageTypeDocument, error) {
	set := bson.M{
		"available_quantity": quantity,
		"updated_at":         time.Now().UTC(),
	}
	if updatedBy != "" {
		set["updated_by"] = updatedBy
	}

	return r.findOneAndUpdate(ctx, locationID, id, bson.M{"$set": set, "$inc": bson.M{"version": 1}})
}

// Delete deactivates a package type. Deactivated types are excluded from catalogs.
func (r *PackageTypesRepository) Delete(ctx context.Context, locationID string, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, activeFilter(locationID, id), bson.M{
		"$set": bson.M{"active": false, "updated_at": time.Now().UTC()},
		"$inc": bson.M{"version": 1},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrPackageTypeNotFound
	}
	return nil
}

func (r *PackageTypesRepository) findOneAndUpdate(ctx context.Context, locationID string, id primitive.ObjectID, update bson.M) (*PackageTypeDocument, error) {
	var doc PackageTypeDocument
	err := r.collection.FindOneAndUpdate(
		ctx,
		activeFilter(locationID, id),
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPackageTypeNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicatePackageType
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func activeFilter(locationID string, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "location_id": locationID, "active": true}
}
