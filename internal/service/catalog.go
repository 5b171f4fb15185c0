package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/packaging-service/internal/circuitbreaker"
	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/metrics"
	"github.com/guttosm/packaging-service/internal/repository"
	"github.com/guttosm/packaging-service/internal/service/cache"
)

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrInvalidPackageType is returned when package type attributes fail validation.
	ErrInvalidPackageType = errors.New("invalid package type")
	// ErrCatalogUnavailable is returned when no catalog can be resolved for a location.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// CatalogService manages the package catalogs of locations.
type CatalogService interface {
	Catalog(ctx context.Context, locationID string) ([]model.PackageDimension, error)
	ListPackageTypes(ctx context.Context, locationID string) ([]repository.PackageTypeDocument, error)
	CreatePackageType(ctx context.Context, locationID string, fields repository.PackageTypeFields, createdBy string) (*repository.PackageTypeDocument, error)
	UpdatePackageType(ctx context.Context, locationID string, id primitive.ObjectID, fields repository.PackageTypeFields, updatedBy string) (*repository.PackageTypeDocument, error)
	SetStock(ctx context.Context, locationID string, id primitive.ObjectID, quantity int, updatedBy string) (*repository.PackageTypeDocument, error)
	DeletePackageType(ctx context.Context, locationID string, id primitive.ObjectID) error
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// WithCatalogCache caches catalog snapshots per location.
func WithCatalogCache(c cache.Cache) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.cache = c
	}
}

// WithDefaultCatalog sets the catalog served when the repository is disabled or unreachable.
func WithDefaultCatalog(catalog []model.PackageDimension) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.defaultCatalog = catalog
	}
}

// WithCatalogLogger sets the logger used for fallback decisions.
func WithCatalogLogger(logger zerolog.Logger) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.logger = logger
	}
}

// CatalogServiceImpl implements CatalogService on top of the package types repository.
type CatalogServiceImpl struct {
	repo           repository.PackageTypesRepositoryInterface
	cache          cache.Cache
	defaultCatalog []model.PackageDimension
	logger         zerolog.Logger
}

// NewCatalogService creates a new catalog service. repo may be nil when MongoDB is disabled.
func NewCatalogService(repo repository.PackageTypesRepositoryInterface, opts ...CatalogOption) *CatalogServiceImpl {
	s := &CatalogServiceImpl{
		repo:   repo,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the active package types of a location in creation order.
func (s *CatalogServiceImpl) Catalog(ctx context.Context, locationID string) ([]model.PackageDimension, error) {
	if s.repo == nil {
		return s.fallback(locationID, "repository_disabled", ErrRepositoryNotConfigured)
	}

	if s.cache != nil {
		if catalog, ok := s.cache.Get(locationID); ok {
			return catalog, nil
		}
	}

	docs, err := s.repo.ListByLocation(ctx, locationID)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return s.fallback(locationID, "circuit_open", err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: location %s: %v", ErrCatalogUnavailable, locationID, err)
	}

	catalog := make([]model.PackageDimension, 0, len(docs))
	for _, doc := range docs {
		pkg, err := doc.ToPackageDimension()
		if err != nil {
			return nil, fmt.Errorf("%w: location %s: %v", ErrCatalogUnavailable, locationID, err)
		}
		catalog = append(catalog, pkg)
	}

	if s.cache != nil {
		s.cache.Set(locationID, catalog)
	}
	return catalog, nil
}

func (s *CatalogServiceImpl) fallback(locationID, reason string, cause error) ([]model.PackageDimension, error) {
	if s.defaultCatalog == nil {
		return nil, fmt.Errorf("%w: location %s: %v", ErrCatalogUnavailable, locationID, cause)
	}
	metrics.RecordCatalogFallback(reason)
	s.logger.Debug().
		Str("location_id", locationID).
		Str("reason", reason).
		Int("packages", len(s.defaultCatalog)).
		Msg("serving default catalog")
	return cloneCatalog(s.defaultCatalog), nil
}

// ListPackageTypes returns the stored package types of a location.
func (s *CatalogServiceImpl) ListPackageTypes(ctx context.Context, locationID string) ([]repository.PackageTypeDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.ListByLocation(ctx, locationID)
}

// CreatePackageType validates and stores a new package type.
func (s *CatalogServiceImpl) CreatePackageType(ctx context.Context, locationID string, fields repository.PackageTypeFields, createdBy string) (*repository.PackageTypeDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := ValidatePackageTypeFields(fields); err != nil {
		return nil, err
	}

	doc, err := repository.NewPackageTypeDocument(locationID, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackageType, err)
	}

	created, err := s.repo.Create(ctx, doc, createdBy)
	if err != nil {
		return nil, err
	}
	s.invalidate(locationID)
	return created, nil
}

// UpdatePackageType validates and replaces the attributes of a package type.
func (s *CatalogServiceImpl) UpdatePackageType(ctx context.Context, locationID string, id primitive.ObjectID, fields repository.PackageTypeFields, updatedBy string) (*repository.PackageTypeDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := ValidatePackageTypeFields(fields); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, locationID, id, fields, updatedBy)
	if err != nil {
		return nil, err
	}
	s.invalidate(locationID)
	return updated, nil
}

// SetStock overwrites the available quantity of a package type.
func (s *CatalogServiceImpl) SetStock(ctx context.Context, locationID string, id primitive.ObjectID, quantity int, updatedBy string) (*repository.PackageTypeDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: available quantity must not be negative", ErrInvalidPackageType)
	}

	updated, err := s.repo.SetStock(ctx, locationID, id, quantity, updatedBy)
	if err != nil {
		return nil, err
	}
	s.invalidate(locationID)
	return updated, nil
}

// DeletePackageType removes a package type from the location's catalog.
func (s *CatalogServiceImpl) DeletePackageType(ctx context.Context, locationID string, id primitive.ObjectID) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	if err := s.repo.Delete(ctx, locationID, id); err != nil {
		return err
	}
	s.invalidate(locationID)
	return nil
}

func (s *CatalogServiceImpl) invalidate(locationID string) {
	if s.cache != nil {
		s.cache.Invalidate(locationID)
	}
}

// ValidatePackageTypeFields checks the attributes an operator may store.
// The calculator tolerates any values; stored catalogs are held to a stricter standard.
func ValidatePackageTypeFields(fields repository.PackageTypeFields) error {
	var problems []string
	if strings.TrimSpace(fields.Name) == "" {
		problems = append(problems, "name is required")
	}
	measures := []struct {
		name  string
		value decimal.Decimal
	}{
		{"length", fields.Size.Length},
		{"breadth", fields.Size.Breadth},
		{"height", fields.Size.Height},
		{"max_weight", fields.MaxWeight},
		{"price_per_unit", fields.PricePerUnit},
	}
	for _, m := range measures {
		if m.value.IsNegative() {
			problems = append(problems, m.name+" must not be negative")
		}
	}
	if fields.AvailableQuantity < 0 {
		problems = append(problems, "available_quantity must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPackageType, strings.Join(problems, "; "))
	}
	return nil
}

// CatalogFile is the YAML layout of a package catalog.
type CatalogFile struct {
	Packages []CatalogFileEntry `yaml:"packages"`
}

// CatalogFileEntry is one package type in a catalog file. Omitted measures are zero.
type CatalogFileEntry struct {
	ID                string          `yaml:"id"`
	Name              string          `yaml:"name"`
	Type              string          `yaml:"type"`
	Length            decimal.Decimal `yaml:"length"`
	Breadth           decimal.Decimal `yaml:"breadth"`
	Height            decimal.Decimal `yaml:"height"`
	MaxWeight         decimal.Decimal `yaml:"max_weight"`
	PricePerUnit      decimal.Decimal `yaml:"price_per_unit"`
	AvailableQuantity int             `yaml:"available_quantity"`
}

// ParseCatalog decodes a YAML catalog, keeping entry order.
func ParseCatalog(data []byte) ([]model.PackageDimension, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	catalog := make([]model.PackageDimension, 0, len(file.Packages))
	for i, e := range file.Packages {
		if e.ID == "" {
			return nil, fmt.Errorf("parse catalog: package %d: id is required", i)
		}
		catalog = append(catalog, model.PackageDimension{
			ID:   e.ID,
			Name: e.Name,
			Type: e.Type,
			Size: model.PackageSize{
				Length:  e.Length,
				Breadth: e.Breadth,
				Height:  e.Height,
			},
			MaxWeight:         e.MaxWeight,
			PricePerUnit:      e.PricePerUnit,
			AvailableQuantity: e.AvailableQuantity,
		})
	}
	return catalog, nil
}

// LoadCatalogFile reads and decodes a YAML catalog file.
func LoadCatalogFile(path string) ([]model.PackageDimension, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseCatalog(data)
}
