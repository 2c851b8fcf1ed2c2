// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(product model.Product, packagingType model.PackagingType) model.Prediction {
	args := m.Called(product, packagingType)
	return args.Get(0).(model.Prediction)
}

type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) Recommend(product model.Product, packagingType model.PackagingType, category string) model.Recommendation {
	args := m.Called(product, packagingType, category)
	return args.Get(0).(model.Recommendation)
}
