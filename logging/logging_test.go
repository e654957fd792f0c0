package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupWithWriterLevels(t *testing.T) {
	tests := map[string]struct {
		environment string
		level       string
		expected    zerolog.Level
	}{
		"DevelopmentDefault": {environment: "development", expected: zerolog.DebugLevel},
		"ProductionDefault":  {environment: "production", expected: zerolog.InfoLevel},
		"ExplicitLevel":      {environment: "production", level: "warn", expected: zerolog.WarnLevel},
		"UnknownLevel":       {environment: "production", level: "loud", expected: zerolog.InfoLevel},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			logger := SetupWithWriter(tt.environment, tt.level, &bytes.Buffer{})
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestSetupWithWriterWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWithWriter("production", "", &buf)
	logger.Info().Str("slot", "s1").Msg("validated")

	assert.Contains(t, buf.String(), `"slot":"s1"`)
	assert.Contains(t, buf.String(), `"message":"validated"`)
}
