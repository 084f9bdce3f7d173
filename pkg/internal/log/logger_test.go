/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	const module = "logger_module"

	t.Run("module level", func(t *testing.T) {
		stdOut := newMockWriter()
		stdErr := newMockWriter()

		logger := New(module, WithStdOut(stdOut), WithStdErr(stdErr), WithEncoding(JSON))
		require.Equal(t, module, logger.Module())

		SetLevel(module, WARNING)

		logger.Debugf("debug %s", "message")
		logger.Infof("info %s", "message")
		require.Empty(t, stdOut.String())

		logger.Warnf("warning %s", "message")
		require.Contains(t, stdOut.String(), "warning message")

		logger.Errorf("error %s", "message")
		require.Contains(t, stdErr.String(), "error message")
		require.NotContains(t, stdOut.String(), "error message")

		SetLevel(module, DEBUG)

		logger.Debug("structured debug", WithSuffix("abc"))

		l := unmarshalLogData(t, []byte(lastLine(stdOut.String())))
		require.Equal(t, "structured debug", l.Msg)
		require.Equal(t, "abc", l.Suffix)
		require.Equal(t, "debug", l.Level)
		require.Equal(t, module, l.Logger)
	})

	t.Run("panic", func(t *testing.T) {
		logger := New(module, WithStdErr(newMockWriter()))

		require.Panics(t, func() {
			logger.Panicf("panic %s", "message")
		})
	})

	t.Run("console encoding", func(t *testing.T) {
		stdOut := newMockWriter()

		SetLevel(module, INFO)

		logger := New(module, WithStdOut(stdOut))
		logger.Info("console message", WithTotal(3))

		require.Contains(t, stdOut.String(), "console message")
		require.Contains(t, stdOut.String(), "INFO")
	})
}

func TestParseLevel(t *testing.T) {
	for name, expected := range map[string]Level{
		"critical": PANIC,
		"panic":    PANIC,
		"ERROR":    ERROR,
		"warning":  WARNING,
		"warn":     WARNING,
		"info":     INFO,
		"Debug":    DEBUG,
	} {
		l, err := ParseLevel(name)
		require.NoError(t, err)
		require.Equal(t, expected, l)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid log level")
}

func TestSetSpec(t *testing.T) {
	require.NoError(t, SetSpec("specmodulea=debug:specmoduleb=panic:info"))
	require.Equal(t, DEBUG, GetLevel("specmodulea"))
	require.Equal(t, PANIC, GetLevel("specmoduleb"))
	require.Equal(t, INFO, GetLevel("unknown"))

	spec := GetSpec()
	require.Contains(t, spec, "specmodulea=DEBUG")
	require.Contains(t, spec, "specmoduleb=PANIC")
	require.Contains(t, spec, ":INFO")

	require.Error(t, SetSpec("a=b=c"))
	require.Error(t, SetSpec("modulex=loud"))
}

func lastLine(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == '\n' {
		end--
	}

	start := end
	for start > 0 && s[start-1] != '\n' {
		start--
	}

	return s[start:end]
}
