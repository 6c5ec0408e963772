package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Photic23/rsa-oaep/internal/pkg/config"
)

// ServiceName is attached to every record as the "service" attribute.
const ServiceName = "rsa-oaep"

const (
	serviceKey   = "service"
	componentKey = "component"
)

// Components used when wiring the binaries.
const (
	ComponentCLI          = "cli"
	ComponentHTTP         = "http"
	ComponentCryptography = "cryptography"
	ComponentKeys         = "keys"
	ComponentFiles        = "files"
	ComponentStorage      = "storage"
)

var levels = map[string]slog.Level{
	config.LogLevelDebug:    slog.LevelDebug,
	config.LogLevelInfo:     slog.LevelInfo,
	config.LogLevelWarning:  slog.LevelWarn,
	config.LogLevelError:    slog.LevelError,
	config.LogLevelCritical: slog.LevelError,
}

var (
	shared     Logger
	sharedErr  error
	sharedOnce sync.Once
)

// InitLogger builds the process wide logger from settings. Only the first call has an effect.
func InitLogger(settings *config.LoggerSettings) error {
	sharedOnce.Do(func() {
		shared, sharedErr = New(settings)
	})
	return sharedErr
}

// GetLogger returns the logger built by InitLogger.
func GetLogger() (Logger, error) {
	if shared == nil {
		return nil, errors.New("logger not initialized: call InitLogger first")
	}
	return shared, nil
}

// New validates settings and returns a console or rotating file logger.
func New(settings *config.LoggerSettings) (Logger, error) {
	if settings == nil {
		return nil, errors.New("logger settings are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger settings: %w", err)
	}

	switch settings.LogType {
	case config.LogTypeConsole:
		return NewConsoleLogger(settings.LogLevel), nil
	case config.LogTypeFile:
		return NewFileLogger(settings.LogLevel, settings.FilePath, settings.MaxSize, settings.MaxBackups, settings.MaxAge), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", settings.LogType)
	}
}

// WithComponent returns a logger whose records carry component. Loggers not created by this package are
// returned unchanged.
func WithComponent(l Logger, component string) Logger {
	if s, ok := l.(interface{ withComponent(string) Logger }); ok {
		return s.withComponent(component)
	}
	return l
}

func newSlogLogger(handler slog.Handler) slogLogger {
	return slogLogger{logger: slog.New(handler).With(serviceKey, ServiceName)}
}

// parseLevel maps a configured level name to slog; unknown names log at info.
func parseLevel(level string) slog.Level {
	if l, ok := levels[level]; ok {
		return l
	}
	return slog.LevelInfo
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}
