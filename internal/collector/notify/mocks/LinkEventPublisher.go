package mocks

import (
	context "context"

	models "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
	mock "github.com/stretchr/testify/mock"
)

// LinkEventPublisher is a mock type for the LinkEventPublisher type
type LinkEventPublisher struct {
	mock.Mock
}

// Close provides a mock function with no fields
func (_m *LinkEventPublisher) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// PublishLinkSaved provides a mock function with given fields: ctx, record
func (_m *LinkEventPublisher) PublishLinkSaved(ctx context.Context, record *models.LinkRecord) error {
	ret := _m.Called(ctx, record)

	if len(ret) == 0 {
		panic("no return value specified for PublishLinkSaved")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.LinkRecord) error); ok {
		r0 = rf(ctx, record)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewLinkEventPublisher creates a new instance of LinkEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewLinkEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *LinkEventPublisher {
	mock := &LinkEventPublisher{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
