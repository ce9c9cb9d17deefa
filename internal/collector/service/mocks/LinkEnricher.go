package mocks

import (
	context "context"

	enrichment "github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/enrichment"
	models "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
	mock "github.com/stretchr/testify/mock"
)

// LinkEnricher is a mock type for the LinkEnricher type
type LinkEnricher struct {
	mock.Mock
}

// Enrich provides a mock function with given fields: ctx, in
func (_m *LinkEnricher) Enrich(ctx context.Context, in enrichment.Input) (*models.EnrichmentResult, error) {
	ret := _m.Called(ctx, in)

	if len(ret) == 0 {
		panic("no return value specified for Enrich")
	}

	var r0 *models.EnrichmentResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, enrichment.Input) (*models.EnrichmentResult, error)); ok {
		return rf(ctx, in)
	}
	if rf, ok := ret.Get(0).(func(context.Context, enrichment.Input) *models.EnrichmentResult); ok {
		r0 = rf(ctx, in)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.EnrichmentResult)
	}

	if rf, ok := ret.Get(1).(func(context.Context, enrichment.Input) error); ok {
		r1 = rf(ctx, in)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewLinkEnricher creates a new instance of LinkEnricher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewLinkEnricher(t interface {
	mock.TestingT
	Cleanup(func())
}) *LinkEnricher {
	mock := &LinkEnricher{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
