package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", false)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", "user_id", "u1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"user_id":"u1"`)
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "DEBUG", true)
	require.NoError(t, err)

	log.Debug("details")
	assert.Contains(t, buf.String(), "msg=details")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "verbose", false)
	assert.Error(t, err)
}
