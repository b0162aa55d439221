package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		l, err := newLogger(Config{Level: level, Encoding: "json"})
		require.NoError(t, err, "level %s", level)
		assert.NotNil(t, l)
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, err := newLogger(Config{Level: "loud", Encoding: "json"})
	assert.Error(t, err)
}

func TestNewLoggerConsoleEncoding(t *testing.T) {
	l, err := newLogger(Config{Level: "info", Encoding: "console", Development: true})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestGetNeverNil(t *testing.T) {
	assert.NotNil(t, Get())
	assert.NotNil(t, With())
}
