package adapters

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogrusLoggerAdapter implements LoggerAdapter on top of logrus.
// Every entry carries component=conversions.
type LogrusLoggerAdapter struct {
	entry *logrus.Entry
}

var _ LoggerAdapter = (*LogrusLoggerAdapter)(nil)

// NewLogrusLoggerAdapter creates a logger writing text entries to stderr at the given level.
func NewLogrusLoggerAdapter(level LogLevel) *LogrusLoggerAdapter {
	return NewLogrusLoggerAdapterWithOutput(os.Stderr, level)
}

// NewLogrusLoggerAdapterWithOutput is NewLogrusLoggerAdapter with a custom writer.
func NewLogrusLoggerAdapterWithOutput(out io.Writer, level LogLevel) *LogrusLoggerAdapter {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	logger.SetLevel(logrusLevel(level))
	return NewLogrusLoggerAdapterWithLogger(logger)
}

// NewLogrusLoggerAdapterWithLogger wraps an existing logger and keeps its level and output.
func NewLogrusLoggerAdapterWithLogger(logger *logrus.Logger) *LogrusLoggerAdapter {
	return &LogrusLoggerAdapter{
		entry: logger.WithField("component", "conversions"),
	}
}

func (l *LogrusLoggerAdapter) Debug(message string, args ...interface{}) {
	l.entry.Debugf(message, args...)
}

func (l *LogrusLoggerAdapter) Info(message string, args ...interface{}) {
	l.entry.Infof(message, args...)
}

func (l *LogrusLoggerAdapter) Warn(message string, args ...interface{}) {
	l.entry.Warnf(message, args...)
}

func (l *LogrusLoggerAdapter) Error(message string, args ...interface{}) {
	l.entry.Errorf(message, args...)
}

func logrusLevel(level LogLevel) logrus.Level {
	switch level {
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelInfo:
		return logrus.InfoLevel
	case LogLevelWarn:
		return logrus.WarnLevel
	case LogLevelError:
		return logrus.ErrorLevel
	case LogLevelNone:
		// nothing in this module logs at panic level
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}
