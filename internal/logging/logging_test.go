package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/logging"
)

func TestParseLevel(t *testing.T) {
	type testCase struct {
		in   string
		want slog.Level
	}

	tests := []testCase{
		{in: "debug", want: slog.LevelDebug},
		{in: "WARN", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: " error ", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	log := logging.New(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Warn("translation lookup failed", "original", "LAIT 2%")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "translation lookup failed")
	assert.Contains(t, out, "LAIT 2%")
}
