// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

type MockQuoteProvider struct {
	mock.Mock
}

func (m *MockQuoteProvider) Quote(in model.QuoteInput) model.Quote {
	args := m.Called(in)
	return args.Get(0).(model.Quote)
}

func (m *MockQuoteProvider) InvalidateCache() {
	m.Called()
}

type MockCostEstimator struct {
	mock.Mock
}

func (m *MockCostEstimator) EstimateCost(box model.BoxDimensions, packagingType model.PackagingType, thicknessLevel int, voidSpace float64) model.CostBreakdown {
	args := m.Called(box, packagingType, thicknessLevel, voidSpace)
	return args.Get(0).(model.CostBreakdown)
}

func (m *MockCostEstimator) Compare(product model.Product, packagingType model.PackagingType, rec model.Recommendation) model.CostComparison {
	args := m.Called(product, packagingType, rec)
	return args.Get(0).(model.CostComparison)
}

type MockReportManager struct {
	mock.Mock
}

func (m *MockReportManager) BuildPayload(product model.Product, packagingType model.PackagingType, quote model.Quote) model.ReportPayload {
	args := m.Called(product, packagingType, quote)
	return args.Get(0).(model.ReportPayload)
}

func (m *MockReportManager) Save(ctx context.Context, identity model.Identity, payload model.ReportPayload) (*model.Report, error) {
	args := m.Called(ctx, identity, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportManager) List(ctx context.Context, identity model.Identity) ([]model.Report, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Report), args.Error(1)
}

func (m *MockReportManager) Delete(ctx context.Context, identity model.Identity, id string) error {
	args := m.Called(ctx, identity, id)
	return args.Error(0)
}

func (m *MockReportManager) Download(ctx context.Context, identity model.Identity, id string) (string, string, error) {
	args := m.Called(ctx, identity, id)
	return args.String(0), args.String(1), args.Error(2)
}

type MockFeedbackRecorder struct {
	mock.Mock
}

func (m *MockFeedbackRecorder) Record(identity model.Identity, product model.Product, box model.BoxDimensions, thicknessLevel int) bool {
	args := m.Called(identity, product, box, thicknessLevel)
	return args.Bool(0)
}

type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) Verify(tokenString string) (model.Identity, error) {
	args := m.Called(tokenString)
	return args.Get(0).(model.Identity), args.Error(1)
}

type MockLoggingService struct {
	mock.Mock
}

// NewMockLoggingService creates a MockLoggingService whose expectations are asserted on cleanup.
func NewMockLoggingService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLoggingService {
	m := &MockLoggingService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}
