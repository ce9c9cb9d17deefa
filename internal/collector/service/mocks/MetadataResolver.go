package mocks

import (
	context "context"

	metadata "github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/metadata"
	models "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
	mock "github.com/stretchr/testify/mock"
)

// MetadataResolver is a mock type for the MetadataResolver type
type MetadataResolver struct {
	mock.Mock
}

// Resolve provides a mock function with given fields: ctx, platform, rawURL
func (_m *MetadataResolver) Resolve(ctx context.Context, platform models.Platform, rawURL string) metadata.Resolution {
	ret := _m.Called(ctx, platform, rawURL)

	if len(ret) == 0 {
		panic("no return value specified for Resolve")
	}

	var r0 metadata.Resolution
	if rf, ok := ret.Get(0).(func(context.Context, models.Platform, string) metadata.Resolution); ok {
		r0 = rf(ctx, platform, rawURL)
	} else {
		r0 = ret.Get(0).(metadata.Resolution)
	}

	return r0
}

// NewMetadataResolver creates a new instance of MetadataResolver. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMetadataResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MetadataResolver {
	mock := &MetadataResolver{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
