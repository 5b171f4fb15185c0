package http

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/repository"
	"github.com/guttosm/packaging-service/internal/service"
)

type mockEstimateService struct {
	mock.Mock
}

func (m *mockEstimateService) EstimateProduct(ctx context.Context, req service.EstimateRequest) (*service.Estimate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Estimate), args.Error(1)
}

func (m *mockEstimateService) EstimateProducts(ctx context.Context, req service.MultiEstimateRequest) (*service.MultiEstimate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MultiEstimate), args.Error(1)
}

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) Catalog(ctx context.Context, locationID string) ([]model.PackageDimension, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PackageDimension), args.Error(1)
}

func (m *mockCatalogService) ListPackageTypes(ctx context.Context, locationID string) ([]repository.PackageTypeDocument, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PackageTypeDocument), args.Error(1)
}

func (m *mockCatalogService) CreatePackageType(ctx context.Context, locationID string, fields repository.PackageTypeFields, createdBy string) (*repository.PackageTypeDocument, error) {
	args := m.Called(ctx, locationID, fields, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PackageTypeDocument), args.Error(1)
}

func (m *mockCatalogService) UpdatePackageType(ctx context.Context, locationID string, id primitive.ObjectID, fields repository.PackageTypeFields, updatedBy string) (*repository.PackageTypeDocument, error) {
	args := m.Called(ctx, locationID, id, fields, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PackageTypeDocument), args.Error(1)
}

func (m *mockCatalogService) SetStock(ctx context.Context, locationID string, id primitive.ObjectID, quantity int, updatedBy string) (*repository.PackageTypeDocument, error) {
	args := m.Called(ctx, locationID, id, quantity, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PackageTypeDocument), args.Error(1)
}

func (m *mockCatalogService) DeletePackageType(ctx context.Context, locationID string, id primitive.ObjectID) error {
	args := m.Called(ctx, locationID, id)
	return args.Error(0)
}
