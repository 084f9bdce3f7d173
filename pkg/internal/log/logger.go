/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encoding defines the log encoding.
type Encoding string

const (
	// Console encodes log entries as human readable text.
	Console Encoding = "console"
	// JSON encodes log entries as JSON.
	JSON Encoding = "json"
)

// Log is a module logger backed by zap. The effective level is looked up on every
// call so that levels may be changed at runtime via SetLevel/SetSpec.
type Log struct {
	instance *zap.Logger
	module   string
}

type options struct {
	encoding Encoding
	stdOut   zapcore.WriteSyncer
	stdErr   zapcore.WriteSyncer
}

// Option is a logger option.
type Option func(o *options)

// WithStdOut sets the output for debug, info and warning messages.
func WithStdOut(w io.Writer) Option {
	return func(o *options) {
		o.stdOut = zapcore.AddSync(w)
	}
}

// WithStdErr sets the output for error and panic messages.
func WithStdErr(w io.Writer) Option {
	return func(o *options) {
		o.stdErr = zapcore.AddSync(w)
	}
}

// WithEncoding sets the output encoding (console or json).
func WithEncoding(encoding Encoding) Option {
	return func(o *options) {
		o.encoding = encoding
	}
}

// New returns a logger for the given module.
func New(module string, opts ...Option) *Log {
	o := &options{
		encoding: Console,
		stdOut:   zapcore.Lock(os.Stdout),
		stdErr:   zapcore.Lock(os.Stderr),
	}

	for _, opt := range opts {
		opt(o)
	}

	enabler := &moduleLevel{module: module}

	core := zapcore.NewTee(
		zapcore.NewCore(newEncoder(o.encoding), o.stdOut, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l < zapcore.ErrorLevel && enabler.Enabled(l)
		})),
		zapcore.NewCore(newEncoder(o.encoding), o.stdErr, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapcore.ErrorLevel && enabler.Enabled(l)
		})),
	)

	return &Log{
		instance: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named(module),
		module:   module,
	}
}

func newEncoder(encoding Encoding) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if encoding == JSON {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder

		return zapcore.NewJSONEncoder(cfg)
	}

	return zapcore.NewConsoleEncoder(cfg)
}

// Module returns the name of the module.
func (l *Log) Module() string {
	return l.module
}

// IsEnabled returns true if the given level is enabled for this module.
func (l *Log) IsEnabled(level Level) bool {
	return GetLevel(l.module).enables(level)
}

// Debug logs a message at debug level with the given fields.
func (l *Log) Debug(msg string, fields ...zap.Field) {
	l.instance.Debug(msg, fields...)
}

// Debugf logs a formatted message at debug level.
func (l *Log) Debugf(msg string, args ...interface{}) {
	if !l.IsEnabled(DEBUG) {
		return
	}

	l.instance.Debug(fmt.Sprintf(msg, args...))
}

// Info logs a message at info level with the given fields.
func (l *Log) Info(msg string, fields ...zap.Field) {
	l.instance.Info(msg, fields...)
}

// Infof logs a formatted message at info level.
func (l *Log) Infof(msg string, args ...interface{}) {
	if !l.IsEnabled(INFO) {
		return
	}

	l.instance.Info(fmt.Sprintf(msg, args...))
}

// Warn logs a message at warning level with the given fields.
func (l *Log) Warn(msg string, fields ...zap.Field) {
	l.instance.Warn(msg, fields...)
}

// Warnf logs a formatted message at warning level.
func (l *Log) Warnf(msg string, args ...interface{}) {
	if !l.IsEnabled(WARNING) {
		return
	}

	l.instance.Warn(fmt.Sprintf(msg, args...))
}

// Error logs a message at error level with the given fields.
func (l *Log) Error(msg string, fields ...zap.Field) {
	l.instance.Error(msg, fields...)
}

// Errorf logs a formatted message at error level.
func (l *Log) Errorf(msg string, args ...interface{}) {
	if !l.IsEnabled(ERROR) {
		return
	}

	l.instance.Error(fmt.Sprintf(msg, args...))
}

// Panic logs a message at panic level and then panics.
func (l *Log) Panic(msg string, fields ...zap.Field) {
	l.instance.Panic(msg, fields...)
}

// Panicf logs a formatted message at panic level and then panics.
func (l *Log) Panicf(msg string, args ...interface{}) {
	l.instance.Panic(fmt.Sprintf(msg, args...))
}

// Sync flushes buffered log entries.
func (l *Log) Sync() error {
	return l.instance.Sync()
}

type moduleLevel struct {
	module string
}

func (m *moduleLevel) Enabled(l zapcore.Level) bool {
	return GetLevel(m.module).enables(Level(l))
}
