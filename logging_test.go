package async

import (
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/require"
)

// recordedEvent is a minimal logiface.Event implementation for bridging this
// package's Logger interface onto logiface, the same shape as the teacher's
// testEvent in eventloop/coverage_extra_test.go.
type recordedEvent struct {
	logiface.UnimplementedEvent
	level  logiface.Level
	fields map[string]any
}

func (e *recordedEvent) Level() logiface.Level { return e.level }

func (e *recordedEvent) AddField(key string, val any) {
	if e.fields == nil {
		e.fields = map[string]any{}
	}
	e.fields[key] = val
}

type recordedEventFactory struct{}

func (f *recordedEventFactory) NewEvent(level logiface.Level) *recordedEvent {
	return &recordedEvent{level: level}
}

type recordedEventWriter struct {
	events []*recordedEvent
}

func (w *recordedEventWriter) Write(event *recordedEvent) error {
	w.events = append(w.events, event)
	return nil
}

// logifaceLogger adapts a logiface.Logger[Event] to this package's Logger
// interface, letting callers plug any logiface backend (zerolog, slog,
// logrus, stumpy, ...) in as the async package's structured logger.
type logifaceLogger struct {
	logger *logiface.Logger[logiface.Event]
}

func (l *logifaceLogger) IsEnabled(level LogLevel) bool {
	return l.logger.Level() >= logifaceLevel(level)
}

func (l *logifaceLogger) Log(entry LogEntry) {
	b := l.logger.Build(logifaceLevel(entry.Level))
	if b == nil {
		return
	}
	b = b.Str("category", entry.Category)
	if entry.Err != nil {
		b = b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

func logifaceLevel(level LogLevel) logiface.Level {
	switch level {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelInfo:
		return logiface.LevelInformational
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}

func TestLogifaceAdapterReceivesLogEntries(t *testing.T) {
	writer := &recordedEventWriter{}
	factory := &recordedEventFactory{}

	typedLogger := logiface.New[*recordedEvent](
		logiface.WithEventFactory[*recordedEvent](factory),
		logiface.WithWriter[*recordedEvent](writer),
		logiface.WithLevel[*recordedEvent](logiface.LevelDebug),
	)

	adapter := &logifaceLogger{logger: typedLogger.Logger()}
	SetStructuredLogger(adapter)
	defer SetStructuredLogger(nil)

	logError("future", "something broke", ErrBrokenPromise)

	require.Len(t, writer.events, 1)
	require.Equal(t, logiface.LevelError, writer.events[0].level)
}

func TestDefaultLoggerRespectsLevel(t *testing.T) {
	l := NewDefaultLogger(LevelWarn)
	require.False(t, l.IsEnabled(LevelDebug))
	require.True(t, l.IsEnabled(LevelWarn))
	require.True(t, l.IsEnabled(LevelError))
}

func TestNoopLoggerIsAlwaysDisabled(t *testing.T) {
	var l noopLogger
	require.False(t, l.IsEnabled(LevelError))
}
