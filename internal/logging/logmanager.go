//
//  Copyright © Manetu Inc. All rights reserved.
//

package logging

import (
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// registry keeps track of all instantiated loggers
type registry struct {
	loggers  map[string]*Logger
	defLevel zapcore.Level
}

var (
	manager *registry
	mu      sync.RWMutex
	once    sync.Once
)

// resetForTesting resets the manager state - only for testing
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	manager = nil
	once = sync.Once{}
}

func initManager() {
	manager = &registry{
		loggers:  make(map[string]*Logger),
		defLevel: zapcore.InfoLevel,
	}
}

// GetLogger returns the logger for module, creating it at the current
// default level on first use.
func GetLogger(module string) *Logger {
	once.Do(initManager)

	mu.RLock()
	l := manager.loggers[module]
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l := manager.loggers[module]; l != nil {
		return l
	}

	l = newLogger(module)
	l.SetLevel(manager.defLevel)
	manager.loggers[module] = l
	return l
}

// parseLevel converts a level name to a zapcore.Level; unknown names map to info.
func parseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(levelStr) {
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	case "error":
		return zapcore.ErrorLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "debug", "trace":
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// UpdateLogLevels updates log levels from a string of the form
// "mod1:debug;mod2:error;.:info". The "." module sets the default for every
// module not named explicitly. Whitespace is ignored.
func UpdateLogLevels(logstr string) error {
	once.Do(initManager)

	logstr = strings.Join(strings.Fields(logstr), "")

	mu.Lock()
	defer mu.Unlock()

	explicit := make(map[string]bool)
	var defaultLevel zapcore.Level
	hasDefault := false

	for _, l := range strings.Split(logstr, ";") {
		parts := strings.Split(l, ":")
		if len(parts) != 2 {
			continue
		}

		module, level := parts[0], parseLevel(parts[1])
		if module == "." {
			defaultLevel = level
			hasDefault = true
			continue
		}

		explicit[module] = true
		logger := manager.loggers[module]
		if logger == nil {
			logger = newLogger(module)
			manager.loggers[module] = logger
		}
		logger.SetLevel(level)
	}

	if hasDefault {
		manager.defLevel = defaultLevel
		for mod, logger := range manager.loggers {
			if !explicit[mod] {
				logger.SetLevel(defaultLevel)
			}
		}
	}

	return nil
}
