package logs

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKey string

const (
	ctxKeyLogID ctxKey = "log_id"
	callerField        = "caller"

	// frames between runtime.Caller in logf and the code calling a package
	// level helper such as logs.Info.
	callerDepth = 3
)

// Options mirrors config.LoggingConfig without importing it.
type Options struct {
	Level      string
	Format     string // text, json
	Output     string // stdout, stderr, file, both
	File       string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

type defaultLogger struct {
	log *logrus.Logger
}

func newDefaultLogger() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&textFormatter{enableColor: shouldColorize("stderr")})
	l.SetLevel(logrus.InfoLevel)
	return &defaultLogger{log: l}
}

func newConfiguredLogger(opts Options) (Logger, error) {
	output := strings.ToLower(strings.TrimSpace(opts.Output))
	if output == "" {
		output = "stderr"
	}
	w, err := buildWriter(opts, output)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(parseLogLevel(opts.Level))
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&textFormatter{enableColor: shouldColorize(output)})
	}
	return &defaultLogger{log: l}, nil
}

// logf stamps the caller and the context's log id onto the entry. Fatal
// exits after writing.
func (l *defaultLogger) logf(ctx context.Context, level logrus.Level, format string, v []interface{}) {
	if !l.log.IsLevelEnabled(level) {
		return
	}
	fields := logrus.Fields{}
	if _, file, line, ok := runtime.Caller(callerDepth); ok {
		fields[callerField] = fmt.Sprintf("%s:%d", shortFilePath(file), line)
	}
	entry := l.log.WithFields(fields)
	if ctx != nil {
		entry = entry.WithContext(ctx)
		if id := l.GetLogID(ctx); id != "" {
			entry = entry.WithField(string(ctxKeyLogID), id)
		}
	}

	entry.Logf(level, format, v...)
	if level == logrus.FatalLevel {
		l.log.Exit(1)
	}
}

func (l *defaultLogger) GetLevel() LogLevel {
	return levelFromLogrus(l.log.GetLevel())
}

func (l *defaultLogger) SetLevel(level LogLevel) {
	if lv, ok := levelToLogrus(level); ok {
		l.log.SetLevel(lv)
	}
}

func (l *defaultLogger) Debug(format string, v ...interface{}) {
	l.logf(context.Background(), logrus.DebugLevel, format, v)
}
func (l *defaultLogger) Info(format string, v ...interface{}) {
	l.logf(context.Background(), logrus.InfoLevel, format, v)
}
func (l *defaultLogger) Warn(format string, v ...interface{}) {
	l.logf(context.Background(), logrus.WarnLevel, format, v)
}
func (l *defaultLogger) Error(format string, v ...interface{}) {
	l.logf(context.Background(), logrus.ErrorLevel, format, v)
}
func (l *defaultLogger) Fatal(format string, v ...interface{}) {
	l.logf(context.Background(), logrus.FatalLevel, format, v)
}

func (l *defaultLogger) CtxDebug(ctx context.Context, format string, v ...interface{}) {
	l.logf(ctx, logrus.DebugLevel, format, v)
}
func (l *defaultLogger) CtxInfo(ctx context.Context, format string, v ...interface{}) {
	l.logf(ctx, logrus.InfoLevel, format, v)
}
func (l *defaultLogger) CtxWarn(ctx context.Context, format string, v ...interface{}) {
	l.logf(ctx, logrus.WarnLevel, format, v)
}
func (l *defaultLogger) CtxError(ctx context.Context, format string, v ...interface{}) {
	l.logf(ctx, logrus.ErrorLevel, format, v)
}
func (l *defaultLogger) CtxFatal(ctx context.Context, format string, v ...interface{}) {
	l.logf(ctx, logrus.FatalLevel, format, v)
}

func (l *defaultLogger) NewLogID() string { return uuid.NewString() }

func (l *defaultLogger) GetLogID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKeyLogID).(string)
	return id
}

func (l *defaultLogger) SetLogID(ctx context.Context, logID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKeyLogID, logID)
}

func (l *defaultLogger) Flush() {}
