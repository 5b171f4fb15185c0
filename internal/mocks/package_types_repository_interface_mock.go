// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/packaging-service/internal/repository"
)

type MockPackageTypesRepositoryInterface struct {
	mock.Mock
}

func (m *MockPackageTypesRepositoryInterface) ListByLocation(ctx context.Context, locationID string) ([]repository.PackageTypeDocument, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PackageTypeDocument), args.Error(1)
}

func (m *MockPackageTypesRepositoryInterface) GetByID(ctx context.Context, locationID string, id primitive.ObjectID) (*repository.PackageTypeDocument, error) {
	args := m.Called(ctx, locationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PackageTypeDocument), args.Error(1)
}

func (m *MockPackageTypesRepositoryInterface) Create(ctx context.Context, doc *repository.PackageTypeDocument, createdBy string) (*repository.PackageTypeDocument, error) {
	args := m.Called(ctx, doc, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PackageTypeDocument), args.Error(1)
}

func (m *MockPackageTypesRepositoryInterface) Update(ctx context.Context, locationID string, id primitive.ObjectID, fields repository.PackageTypeFields, updatedBy string) (*repository.PackageTypeDocument, error) {
	args := m.Called(ctx, locationID, id, fields, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PackageTypeDocument), args.Error(1)
}

func (m *MockPackageTypesRepositoryInterface) SetStock(ctx context.Context, locationID string, id primitive.ObjectID, quantity int, updatedBy string) (*repository.PackageTypeDocument, error) {
	args := m.Called(ctx, locationID, id, quantity, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PackageTypeDocument), args.Error(1)
}

func (m *MockPackageTypesRepositoryInterface) Delete(ctx context.Context, locationID string, id primitive.ObjectID) error {
	args := m.Called(ctx, locationID, id)
	return args.Error(0)
}
