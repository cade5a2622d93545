package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulviofreitas/eeroctl/internal/logging"
)

func TestDefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Options{Out: &buf})
	log.Debug().Msg("hidden")
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Str("network_id", "123").Msg("shown")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "123", entry["network_id"])
}

func TestDebugRaisesVerbosity(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Options{Out: &buf, Debug: true})
	log.Debug().Msg("request")
	assert.Contains(t, buf.String(), `"level":"debug"`)
}
