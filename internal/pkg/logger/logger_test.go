package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_WritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	Info().Msg("hidden")
	Warn().Str("component", "test").Msg("visible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "test", entry["component"])
}

func TestRollbarHook_OnlyForwardsErrors(t *testing.T) {
	type report struct {
		level zerolog.Level
		msg   string
	}
	var got []report
	hook := RollbarHook{report: func(level zerolog.Level, msg string) {
		got = append(got, report{level, msg})
	}}

	var buf bytes.Buffer
	lgr := zerolog.New(&buf).Hook(hook)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	lgr.Debug().Msg("debug")
	lgr.Warn().Msg("warn")
	lgr.Error().Msg("database down")
	lgr.Log().Msg("no level")

	require.Len(t, got, 1)
	assert.Equal(t, zerolog.ErrorLevel, got[0].level)
	assert.Equal(t, "database down", got[0].msg)
}
