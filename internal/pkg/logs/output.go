package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultMaxSizeMB = 50

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func buildWriter(opts Options, output string) (io.Writer, error) {
	switch output {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	if output != "file" && output != "both" {
		return nil, fmt.Errorf("unsupported log output: %s", output)
	}
	rotate, err := newRotateWriter(opts)
	if err != nil {
		return nil, err
	}
	if output == "file" {
		return rotate, nil
	}
	return &teeWriter{console: os.Stderr, file: rotate}, nil
}

// teeWriter copies console output into the rotating file without ANSI codes.
type teeWriter struct {
	console io.Writer
	file    io.Writer
}

func (w *teeWriter) Write(p []byte) (int, error) {
	if _, err := w.console.Write(p); err != nil {
		return 0, err
	}
	if _, err := w.file.Write(ansiPattern.ReplaceAll(p, nil)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func newRotateWriter(opts Options) (*lumberjack.Logger, error) {
	if strings.TrimSpace(opts.File) == "" {
		return nil, fmt.Errorf("log file is required when output includes file")
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	size := opts.MaxSize
	if size <= 0 {
		size = defaultMaxSizeMB
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    size,
		MaxBackups: max(opts.MaxBackups, 0),
		MaxAge:     max(opts.MaxAge, 0),
		Compress:   opts.Compress,
	}, nil
}
