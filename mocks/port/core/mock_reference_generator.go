package core

import "github.com/stretchr/testify/mock"

// MockReferenceGenerator is a mock implementation of the ReferenceGenerator port
type MockReferenceGenerator struct {
	mock.Mock
}

func (m *MockReferenceGenerator) NewReference() string {
	args := m.Called()
	return args.String(0)
}
