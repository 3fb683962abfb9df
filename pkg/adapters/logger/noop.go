package logger

import "github.com/user/picx/pkg/ports"

// NoopLogger drops everything. --quiet and the tests use it.
type NoopLogger struct{}

func NewNoop() *NoopLogger {
	return &NoopLogger{}
}

func (*NoopLogger) Debug(string, ...interface{}) {}
func (*NoopLogger) Info(string, ...interface{})  {}
func (*NoopLogger) Warn(string, ...interface{})  {}
func (*NoopLogger) Error(string, ...interface{}) {}

// WithComponent returns l; there is no prefix to keep.
func (l *NoopLogger) WithComponent(string) ports.Logger {
	return l
}
