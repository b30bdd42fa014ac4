package logs

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

const timeLayout = "2006-01-02 15:04:05.000"

type levelInfo struct {
	level  LogLevel
	logrus logrus.Level
	names  []string
	color  *color.Color
}

var levels = []levelInfo{
	{DebugLevel, logrus.DebugLevel, []string{"debug"}, color.New(color.FgCyan)},
	{InfoLevel, logrus.InfoLevel, []string{"info"}, color.New(color.FgGreen)},
	{WarnLevel, logrus.WarnLevel, []string{"warn", "warning"}, color.New(color.FgYellow)},
	{ErrorLevel, logrus.ErrorLevel, []string{"error"}, color.New(color.FgRed)},
	{FatalLevel, logrus.FatalLevel, []string{"fatal"}, color.New(color.FgRed, color.Bold)},
}

// parseLogLevel falls back to info for unknown names.
func parseLogLevel(name string) logrus.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, li := range levels {
		for _, n := range li.names {
			if n == name {
				return li.logrus
			}
		}
	}
	return logrus.InfoLevel
}

func levelFromLogrus(lv logrus.Level) LogLevel {
	for _, li := range levels {
		if li.logrus == lv {
			return li.level
		}
	}
	return InfoLevel
}

func levelToLogrus(level LogLevel) (logrus.Level, bool) {
	for _, li := range levels {
		if li.level == level {
			return li.logrus, true
		}
	}
	return 0, false
}

// textFormatter writes "LEVEL time caller [log_id] message".
type textFormatter struct {
	enableColor bool
}

func (f *textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	level := strings.ToUpper(entry.Level.String())
	if f.enableColor {
		for _, li := range levels {
			if li.logrus == entry.Level {
				level = li.color.Sprint(level)
				break
			}
		}
	}
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(entry.Time.Format(timeLayout))

	if caller, ok := entry.Data[callerField].(string); ok {
		b.WriteByte(' ')
		b.WriteString(caller)
	}
	if id, ok := entry.Data[string(ctxKeyLogID)].(string); ok {
		b.WriteString(" [")
		b.WriteString(id)
		b.WriteByte(']')
	}

	b.WriteByte(' ')
	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// shortFilePath keeps the last directory and the file name.
func shortFilePath(fullPath string) string {
	dir, file := filepath.Split(fullPath)
	if dir == "" {
		return file
	}
	return filepath.Base(filepath.Clean(dir)) + "/" + file
}

func shouldColorize(output string) bool {
	return output != "file" && !color.NoColor
}
