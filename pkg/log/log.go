/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"github.com/trustbloc/sidetree-didcache-go/pkg/internal/log"
)

// Level is a log level.
type Level = log.Level

// Log levels.
const (
	PANIC   = log.PANIC
	ERROR   = log.ERROR
	WARNING = log.WARNING
	INFO    = log.INFO
	DEBUG   = log.DEBUG
)

// SetLevel sets the log level for given module and level.
func SetLevel(module string, level Level) {
	log.SetLevel(module, level)
}

// SetDefaultLevel sets the default log level.
func SetDefaultLevel(level Level) {
	log.SetDefaultLevel(level)
}

// GetLevel returns the log level for the given module.
func GetLevel(module string) Level {
	return log.GetLevel(module)
}

// ParseLevel returns the log level for the given name.
func ParseLevel(name string) (Level, error) {
	return log.ParseLevel(name)
}

// SetSpec sets the log levels for individual modules as well as the default log level.
// The format of the spec is as follows:
//
// module1=level1:module2=level2:module3=level3:defaultLevel
//
// Valid log levels are: critical, error, warning, info, debug
//
// Example:
//
// sidetree-didcache=debug:sidetree-observer=warning:info
func SetSpec(spec string) error {
	return log.SetSpec(spec)
}

// GetSpec returns the log spec which specifies the log level of each individual module. The spec is
// in the following format:
//
// module1=level1:module2=level2:module3=level3:defaultLevel
//
// Example:
//
// sidetree-didcache=DEBUG:sidetree-observer=WARNING:INFO
func GetSpec() string {
	return log.GetSpec()
}
