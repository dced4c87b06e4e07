package core

import (
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockLogger is a mock implementation of the Logger port
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) SetLevel(level coreport.LogLevel) {
	m.Called(level)
}

func (m *MockLogger) Debug(msg string, fields map[string]any) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]any) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]any) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]any) {
	m.Called(msg, fields)
}

func (m *MockLogger) Flush() error {
	args := m.Called()
	return args.Error(0)
}

// RelaxedMockLogger accepts any logging call without prior expectation.
// Use it in tests that do not assert on log output.
func RelaxedMockLogger() *MockLogger {
	logger := new(MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()
	return logger
}
