package logging_test

import (
	"bytes"
	"testing"

	"github.com/agentstation/marksync/pkg/logging"
	"github.com/stretchr/testify/assert"
)

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)

	logging.Info().Str("collection", "42").Msg("routed")
	logging.Warn().Msg("duplicate")

	assert.Equal(t, 2, tl.Count())
	assert.True(t, tl.Contains(`"collection":"42"`))

	tl.Clear()
	assert.Zero(t, tl.Count())
}

func TestDisableLoggingForTest(t *testing.T) {
	logging.DisableLoggingForTest(t)
	assert.NotPanics(t, func() { logging.Error().Msg("dropped") })
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSON(&buf)
	logger.Error().Msg("boom")
	assert.Contains(t, buf.String(), `"level":"error"`)
}
