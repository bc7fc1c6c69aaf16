package di

import (
	"log"
	"sync"

	"modlist.dev/cli/internal/application/ports"
)

// LoggingGatewayAdapter adapts the standard logger to the LoggingGateway interface
type LoggingGatewayAdapter struct {
	logger   *log.Logger
	mu       sync.RWMutex
	logLevel ports.LogLevel
}

// NewLoggingGatewayAdapter creates an adapter that drops entries below level
func NewLoggingGatewayAdapter(logger *log.Logger, level ports.LogLevel) *LoggingGatewayAdapter {
	return &LoggingGatewayAdapter{logger: logger, logLevel: level}
}

func (l *LoggingGatewayAdapter) LogError(err error, message string, fields map[string]interface{}) {
	if !l.shouldLog(ports.LogLevelError) {
		return
	}

	if fields != nil {
		l.logger.Printf("ERROR: %s: %v (fields: %v)", message, err, fields)
	} else {
		l.logger.Printf("ERROR: %s: %v", message, err)
	}
}

func (l *LoggingGatewayAdapter) LogInfo(message string, fields map[string]interface{}) {
	l.Log(ports.LogLevelInfo, message, fields)
}

func (l *LoggingGatewayAdapter) LogDebug(message string, fields map[string]interface{}) {
	l.Log(ports.LogLevelDebug, message, fields)
}

func (l *LoggingGatewayAdapter) LogWarning(message string, fields map[string]interface{}) {
	l.Log(ports.LogLevelWarn, message, fields)
}

// Log writes message if level is at or above the current level
func (l *LoggingGatewayAdapter) Log(level ports.LogLevel, message string, fields map[string]interface{}) {
	if !l.shouldLog(level) {
		return
	}

	levelStr := "INFO"
	switch level {
	case ports.LogLevelError:
		levelStr = "ERROR"
	case ports.LogLevelWarn:
		levelStr = "WARNING"
	case ports.LogLevelDebug:
		levelStr = "DEBUG"
	}

	if fields != nil {
		l.logger.Printf("%s: %s (fields: %v)", levelStr, message, fields)
	} else {
		l.logger.Printf("%s: %s", levelStr, message)
	}
}

// SetLogLevel sets the logging level
func (l *LoggingGatewayAdapter) SetLogLevel(level ports.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logLevel = level
}

// GetLogLevel returns the current logging level
func (l *LoggingGatewayAdapter) GetLogLevel() ports.LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logLevel
}

func (l *LoggingGatewayAdapter) shouldLog(level ports.LogLevel) bool {
	return level.Rank() >= l.GetLogLevel().Rank()
}
