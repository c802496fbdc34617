package util

import "sync"

var (
	globalLogger LoggerInterface
	loggerOnce   sync.Once
)

// InitLogger wires the process-wide logger. Only the first call takes
// effect; every command path funnels through the same instance.
func InitLogger(logLevel, logFile string, debugToConsole bool) {
	loggerOnce.Do(func() {
		globalLogger = NewLogger(logLevel, logFile, debugToConsole)
	})
}

// active returns the global logger, or nil before InitLogger has run.
// Early log calls are dropped rather than panicking.
func active() LoggerInterface {
	return globalLogger
}

func LogDebug(msg string) {
	if l := active(); l != nil {
		l.Debug(msg)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if l := active(); l != nil {
		l.Debugf(format, args...)
	}
}

func LogInfo(msg string) {
	if l := active(); l != nil {
		l.Info(msg)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if l := active(); l != nil {
		l.Warnf(format, args...)
	}
}

func LogError(msg string) {
	if l := active(); l != nil {
		l.Error(msg)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if l := active(); l != nil {
		l.Errorf(format, args...)
	}
}
