// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/repository"
)

type MockReportsRepository struct {
	mock.Mock
}

func (m *MockReportsRepository) Create(ctx context.Context, report *model.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportsRepository) ListByUser(ctx context.Context, userEmail string, limit int) ([]model.Report, error) {
	args := m.Called(ctx, userEmail, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Report), args.Error(1)
}

func (m *MockReportsRepository) FindByID(ctx context.Context, userEmail string, id primitive.ObjectID) (*model.Report, error) {
	args := m.Called(ctx, userEmail, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportsRepository) Delete(ctx context.Context, userEmail string, id primitive.ObjectID) error {
	args := m.Called(ctx, userEmail, id)
	return args.Error(0)
}

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, fb *model.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *MockFeedbackRepository) CreateMany(ctx context.Context, events []*model.Feedback) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockLogsRepository struct {
	mock.Mock
}

func (m *MockLogsRepository) Create(ctx context.Context, entry *repository.LogEntryDocument) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogsRepository) CreateMany(ctx context.Context, entries []*repository.LogEntryDocument) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}
