package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTimeProvider is a mock implementation of the TimeProvider port
type MockTimeProvider struct {
	mock.Mock
}

func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockTimeProvider) Since(t time.Time) time.Duration {
	args := m.Called(t)
	return args.Get(0).(time.Duration)
}

func (m *MockTimeProvider) WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	m.Called(ctx, d)
	return context.WithTimeout(ctx, d)
}
