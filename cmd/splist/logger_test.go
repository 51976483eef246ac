package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Run("verbose shows debug lines", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, true)

		logger.LogDebug("Logging in to SharePoint", "list_id", "abc")
		assert.Contains(t, buf.String(), "Logging in to SharePoint")
		assert.Contains(t, buf.String(), "list_id=abc")
	})

	t.Run("default hides debug and info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, false)

		logger.LogDebug("Logging in to SharePoint", "list_id", "abc")
		logger.LogInfo("List sync starting")
		assert.Empty(t, buf.String())

		logger.LogWarn("SharePoint login failed", "error", "denied")
		assert.Contains(t, buf.String(), "SharePoint login failed")
		assert.Contains(t, buf.String(), "error=denied")
	})
}
