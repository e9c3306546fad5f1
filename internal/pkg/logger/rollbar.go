package logger

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rs/zerolog"
)

// RollbarHook forwards error-level and above log events to Rollbar.
type RollbarHook struct {
	report func(level zerolog.Level, msg string)
}

// NewRollbarHook configures the rollbar client and returns a hook using it
func NewRollbarHook(token, environment string) RollbarHook {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(environment)
	rollbar.SetServerRoot("github.com/futureedge/counselling")

	return RollbarHook{report: func(level zerolog.Level, msg string) {
		if level >= zerolog.FatalLevel {
			rollbar.Critical(msg)
			return
		}
		rollbar.Error(msg)
	}}
}

// Run implements zerolog.Hook
func (h RollbarHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level < zerolog.ErrorLevel || level >= zerolog.NoLevel || h.report == nil {
		return
	}
	h.report(level, msg)
}

// Flush blocks until queued rollbar items are sent
func Flush() {
	rollbar.Wait()
}
