package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger represents a structured logger
type Logger struct {
	logger zerolog.Logger
}

var (
	// Default is the default logger instance
	Default *Logger
)

// Init initializes the logger with the given configuration
func Init() {
	level := getLogLevel()

	// Configure zerolog
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	// Create console writer for development
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	// Create logger
	logger := zerolog.New(output).With().Timestamp().Logger()

	Default = &Logger{logger: logger}

	Default.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// getLogLevel returns the log level from environment variable
func getLogLevel() zerolog.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("FLYER_ENVIRONMENT")
		if levelStr == "production" {
			return zerolog.InfoLevel
		}
		return zerolog.DebugLevel
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// WithField creates a new logger with a single field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{logger: l.logger.With().Interface(key, value).Logger()}
}

// Debug returns a debug event
func (l *Logger) Debug() *zerolog.Event {
	return l.logger.Debug()
}

// Info returns an info event
func (l *Logger) Info() *zerolog.Event {
	return l.logger.Info()
}

// Warn returns a warn event
func (l *Logger) Warn() *zerolog.Event {
	return l.logger.Warn()
}

// Error returns an error event
func (l *Logger) Error() *zerolog.Event {
	return l.logger.Error()
}

// ForComponent creates a logger for a named pipeline component
func ForComponent(component string) *Logger {
	if Default == nil {
		Init()
	}
	return Default.WithField("component", component)
}

// ForDiscoverer creates a logger for the category shop discoverer
func ForDiscoverer() *Logger {
	return ForComponent("discoverer")
}

// ForCollector creates a logger for the shop flyer collector
func ForCollector() *Logger {
	return ForComponent("collector")
}

// ForPipeline creates a logger for the parsing pipeline
func ForPipeline() *Logger {
	return ForComponent("pipeline")
}

// ForRenderer creates a logger for the render capability
func ForRenderer() *Logger {
	return ForComponent("renderer")
}

// ForStorage creates a logger for the output store
func ForStorage() *Logger {
	return ForComponent("storage")
}

// ForPublisher creates a logger for the publisher
func ForPublisher() *Logger {
	return ForComponent("publisher")
}
