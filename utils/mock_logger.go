package utils

// NopLogger discards everything. Handy for tests and for components
// that are constructed without an explicit logger.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// RecordingLogger captures messages so tests can assert on what was logged.
type RecordingLogger struct {
	Entries []LogEntry
}

type LogEntry struct {
	Level   LogLevel
	Message string
	Fields  []any
}

func (l *RecordingLogger) record(level LogLevel, msg string, keysAndValues []any) {
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: msg, Fields: keysAndValues})
}

func (l *RecordingLogger) Debug(msg string, keysAndValues ...any) {
	l.record(LogLevelDebug, msg, keysAndValues)
}

func (l *RecordingLogger) Info(msg string, keysAndValues ...any) {
	l.record(LogLevelInfo, msg, keysAndValues)
}

func (l *RecordingLogger) Warn(msg string, keysAndValues ...any) {
	l.record(LogLevelWarn, msg, keysAndValues)
}

func (l *RecordingLogger) Error(msg string, keysAndValues ...any) {
	l.record(LogLevelError, msg, keysAndValues)
}

// Messages returns the logged messages at the given level, in order.
func (l *RecordingLogger) Messages(level LogLevel) []string {
	var out []string
	for _, e := range l.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
