package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/packaging-service/internal/circuitbreaker"
)

// guarded runs fn through cb. Errors matched by passthrough are returned to the caller
// without counting as breaker failures.
func guarded[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, passthrough func(error) bool, fn func() (T, error)) (T, error) {
	var (
		result    T
		domainErr error
	)
	err := cb.Execute(ctx, func() error {
		var err error
		result, err = fn()
		if err != nil && passthrough != nil && passthrough(err) {
			domainErr = err
			return nil
		}
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, domainErr
}

func isPackageTypeDomainError(err error) bool {
	return errors.Is(err, ErrPackageTypeNotFound) || errors.Is(err, ErrDuplicatePackageType)
}

// PackageTypesRepositoryWithCircuitBreaker guards a package types repository with a circuit breaker.
// ErrCircuitOpen is returned unchanged so callers can fall back to a default catalog.
// Not found and duplicate errors never trip the breaker.
type PackageTypesRepositoryWithCircuitBreaker struct {
	repo           PackageTypesRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewPackageTypesRepositoryWithCircuitBreaker wraps repo with cb.
func NewPackageTypesRepositoryWithCircuitBreaker(repo PackageTypesRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *PackageTypesRepositoryWithCircuitBreaker {
	return &PackageTypesRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *PackageTypesRepositoryWithCircuitBreaker) ListByLocation(ctx context.Context, locationID string) ([]PackageTypeDocument, error) {
	return guarded(ctx, r.circuitBreaker, nil, func() ([]PackageTypeDocument, error) {
		return r.repo.ListByLocation(ctx, locationID)
	})
}

func (r *PackageTypesRepositoryWithCircuitBreaker) GetByID(ctx context.Context, locationID string, id primitive.ObjectID) (*PackageTypeDocument, error) {
	return guarded(ctx, r.circuitBreaker, isPackageTypeDomainError, func() (*PackageTypeDocument, error) {
		return r.repo.GetByID(ctx, locationID, id)
	})
}

func (r *PackageTypesRepositoryWithCircuitBreaker) Create(ctx context.Context, doc *PackageTypeDocument, createdBy string) (*PackageTypeDocument, error) {
	return guarded(ctx, r.circuitBreaker, isPackageTypeDomainError, func() (*PackageTypeDocument, error) {
		return r.repo.Create(ctx, doc, createdBy)
	})
}

func (r *PackageTypesRepositoryWithCircuitBreaker) Update(ctx context.Context, locationID string, id primitive.ObjectID, fields PackageTypeFields, updatedBy string) (*PackageTypeDocument, error) {
	return guarded(ctx, r.circuitBreaker, isPackageTypeDomainError, func() (*PackageTypeDocument, error) {
		return r.repo.Update(ctx, locationID, id, fields, updatedBy)
	})
}

func (r *PackageTypesRepositoryWithCircuitBreaker) SetStock(ctx context.Context, locationID string, id primitive.ObjectID, quantity int, updatedBy string) (*PackageTypeDocument, error) {
	return guarded(ctx, r.circuitBreaker, isPackageTypeDomainError, func() (*PackageTypeDocument, error) {
		return r.repo.SetStock(ctx, locationID, id, quantity, updatedBy)
	})
}

func (r *PackageTypesRepositoryWithCircuitBreaker) Delete(ctx context.Context, locationID string, id primitive.ObjectID) error {
	_, err := guarded(ctx, r.circuitBreaker, isPackageTypeDomainError, func() (struct{}, error) {
		return struct{}{}, r.repo.Delete(ctx, locationID, id)
	})
	return err
}

// GetCircuitBreaker returns the breaker for health reporting.
func (r *PackageTypesRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker guards a logs repository with a circuit breaker.
// Writes are dropped silently while the circuit is open; reads return ErrCircuitOpen.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return r.write(ctx, func() error { return r.repo.Create(ctx, entry) })
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return r.write(ctx, func() error { return r.repo.CreateMany(ctx, entries) })
}

func (r *LogsRepositoryWithCircuitBreaker) write(ctx context.Context, fn func() error) error {
	err := r.circuitBreaker.Execute(ctx, fn)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guarded(ctx, r.circuitBreaker, nil, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guarded(ctx, r.circuitBreaker, nil, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the breaker for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
