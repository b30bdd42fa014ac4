package sweeper

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/tgifai/clientstore/internal/pkg/logs"
)

// cronLogger routes robfig/cron's key/value logging into the package logger.
type cronLogger struct{}

var _ cron.Logger = cronLogger{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logs.Debug("[sweeper] cron %s%s", msg, formatKV(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logs.Error("[sweeper] cron %s: %v%s", msg, err, formatKV(keysAndValues))
}

func formatKV(keysAndValues []interface{}) string {
	if len(keysAndValues) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		b.WriteString(" ")
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, "%v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&b, "%v", keysAndValues[i])
		}
	}
	return b.String()
}
