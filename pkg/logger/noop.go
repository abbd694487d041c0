package logger

// NoopLogger discards all log output. Useful in tests.
type NoopLogger struct{}

// NewNoop creates a logger that discards everything
func NewNoop() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *NoopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *NoopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (l *NoopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (l *NoopLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (l *NoopLogger) With(keysAndValues ...interface{}) Logger       { return l }
