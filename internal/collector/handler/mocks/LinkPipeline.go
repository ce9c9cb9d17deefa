package mocks

import (
	context "context"

	service "github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/service"
	models "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
	mock "github.com/stretchr/testify/mock"
)

// LinkPipeline is a mock type for the LinkPipeline type
type LinkPipeline struct {
	mock.Mock
}

// Process provides a mock function with given fields: ctx, submission
func (_m *LinkPipeline) Process(ctx context.Context, submission service.Submission) (*service.Result, error) {
	ret := _m.Called(ctx, submission)

	if len(ret) == 0 {
		panic("no return value specified for Process")
	}

	var r0 *service.Result
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, service.Submission) (*service.Result, error)); ok {
		return rf(ctx, submission)
	}
	if rf, ok := ret.Get(0).(func(context.Context, service.Submission) *service.Result); ok {
		r0 = rf(ctx, submission)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.Result)
	}

	if rf, ok := ret.Get(1).(func(context.Context, service.Submission) error); ok {
		r1 = rf(ctx, submission)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RecentLinks provides a mock function with given fields: ctx, limit
func (_m *LinkPipeline) RecentLinks(ctx context.Context, limit uint64) ([]*models.LinkRecord, error) {
	ret := _m.Called(ctx, limit)

	if len(ret) == 0 {
		panic("no return value specified for RecentLinks")
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

// NewLinkPipeline creates a new instance of LinkPipeline. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewLinkPipeline(t interface {
	mock.TestingT
	Cleanup(func())
}) *LinkPipeline {
	mock := &LinkPipeline{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
