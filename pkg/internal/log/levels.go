/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// Level defines a log level.
type Level zapcore.Level

// Log levels.
const (
	PANIC   = Level(zapcore.PanicLevel)
	ERROR   = Level(zapcore.ErrorLevel)
	WARNING = Level(zapcore.WarnLevel)
	INFO    = Level(zapcore.InfoLevel)
	DEBUG   = Level(zapcore.DebugLevel)
)

const (
	defaultLevel = INFO
	moduleDelim  = ":"
	levelDelim   = "="
)

//nolint:gochecknoglobals
var levelNames = map[Level]string{
	PANIC:   "PANIC",
	ERROR:   "ERROR",
	WARNING: "WARNING",
	INFO:    "INFO",
	DEBUG:   "DEBUG",
}

// String returns the name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}

	return fmt.Sprintf("Level(%d)", l)
}

func (l Level) enables(other Level) bool {
	return other >= l
}

// ParseLevel returns the level for the given (case insensitive) name.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "PANIC", "CRITICAL", "FATAL":
		return PANIC, nil
	case "ERROR":
		return ERROR, nil
	case "WARNING", "WARN":
		return WARNING, nil
	case "INFO":
		return INFO, nil
	case "DEBUG":
		return DEBUG, nil
	default:
		return ERROR, fmt.Errorf("invalid log level: %s", name)
	}
}

type registry struct {
	mutex        sync.RWMutex
	defaultLevel Level
	levels       map[string]Level
}

//nolint:gochecknoglobals
var levels = &registry{
	defaultLevel: defaultLevel,
	levels:       make(map[string]Level),
}

// SetLevel sets the log level for the given module.
func SetLevel(module string, level Level) {
	levels.mutex.Lock()
	defer levels.mutex.Unlock()

	levels.levels[module] = level
}

// SetDefaultLevel sets the level used by modules that don't have an explicit level.
func SetDefaultLevel(level Level) {
	levels.mutex.Lock()
	defer levels.mutex.Unlock()

	levels.defaultLevel = level
}

// GetLevel returns the log level of the given module.
func GetLevel(module string) Level {
	levels.mutex.RLock()
	defer levels.mutex.RUnlock()

	if level, ok := levels.levels[module]; ok {
		return level
	}

	return levels.defaultLevel
}

// SetSpec sets module levels and the default level from a spec string in the format
// module1=level1:module2=level2:defaultLevel.
func SetSpec(spec string) error {
	moduleLevels := make(map[string]Level)

	var (
		defLevel    Level
		defLevelSet bool
	)

	for _, part := range strings.Split(spec, moduleDelim) {
		if part == "" {
			continue
		}

		kv := strings.Split(part, levelDelim)

		switch len(kv) {
		case 1:
			l, err := ParseLevel(kv[0])
			if err != nil {
				return err
			}

			defLevel = l
			defLevelSet = true
		case 2: //nolint:gomnd
			l, err := ParseLevel(kv[1])
			if err != nil {
				return err
			}

			moduleLevels[kv[0]] = l
		default:
			return fmt.Errorf("invalid log spec: %s", spec)
		}
	}

	levels.mutex.Lock()
	defer levels.mutex.Unlock()

	for module, l := range moduleLevels {
		levels.levels[module] = l
	}

	if defLevelSet {
		levels.defaultLevel = defLevel
	}

	return nil
}

// GetSpec returns the current log spec in the format module1=level1:module2=level2:defaultLevel.
func GetSpec() string {
	levels.mutex.RLock()
	defer levels.mutex.RUnlock()

	modules := make([]string, 0, len(levels.levels))
	for module := range levels.levels {
		modules = append(modules, module)
	}

	sort.Strings(modules)

	var spec strings.Builder

	for _, module := range modules {
		spec.WriteString(module)
		spec.WriteString(levelDelim)
		spec.WriteString(levels.levels[module].String())
		spec.WriteString(moduleDelim)
	}

	spec.WriteString(levels.defaultLevel.String())

	return spec.String()
}
