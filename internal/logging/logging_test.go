package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.expected, Setup(&buf, tt.level))
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestSetup_WritesToWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	Setup(&buf, "info")
	log.Warn().Int("nodes", 0).Msg("partitioning disabled")
	assert.Contains(t, buf.String(), "partitioning disabled")
	assert.Contains(t, buf.String(), "nodes=")
}
