package poller

import "github.com/manav03panchal/controleplus/internal/logging"

// cronLogger routes cron's own messages to the application logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logging.DebugLog("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logging.Error("cron: "+msg, append([]any{logging.KeyError, err}, keysAndValues...)...)
}
