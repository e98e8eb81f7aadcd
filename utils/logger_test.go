package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogDbOperation(t *testing.T) {
	var buf bytes.Buffer
	saved := Logger
	Logger = zerolog.New(&buf)
	defer func() { Logger = saved }()

	LogDbOperation("find", "clients", map[string]string{"workspaceId": "ws1"}, "3条记录")

	out := buf.String()
	assert.Contains(t, out, `"operation":"find"`)
	assert.Contains(t, out, `"collection":"clients"`)
	assert.Contains(t, out, "ws1")
}
