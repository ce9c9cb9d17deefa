package mocks

import (
	context "context"

	models "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
	mock "github.com/stretchr/testify/mock"
)

// LinkRepository is a mock type for the LinkRepository type
type LinkRepository struct {
	mock.Mock
}

// CountBySourceType provides a mock function with given fields: ctx
func (_m *LinkRepository) CountBySourceType(ctx context.Context) (map[models.SourceType]int64, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for CountBySourceType")
	}

	var r0 map[models.SourceType]int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (map[models.SourceType]int64, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) map[models.SourceType]int64); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[models.SourceType]int64)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// List provides a mock function with given fields: ctx, limit
func (_m *LinkRepository) List(ctx context.Context, limit uint64) ([]*models.LinkRecord, error) {
	ret := _m.Called(ctx, limit)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 []*models.LinkRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uint64) ([]*models.LinkRecord, error)); ok {
		return rf(ctx, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uint64) []*models.LinkRecord); ok {
		r0 = rf(ctx, limit)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.LinkRecord)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uint64) error); ok {
		r1 = rf(ctx, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Save provides a mock function with given fields: ctx, link
func (_m *LinkRepository) Save(ctx context.Context, link *models.LinkRecord) error {
	ret := _m.Called(ctx, link)

	if len(ret) == 0 {
		panic("no return value specified for Save")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.LinkRecord) error); ok {
		r0 = rf(ctx, link)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewLinkRepository creates a new instance of LinkRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewLinkRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *LinkRepository {
	mock := &LinkRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
