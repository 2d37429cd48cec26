package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"legalflow/pkg/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogFile = "legalflow.log"
	maxLogSizeMB   = 5
	maxLogBackups  = 5
	maxLogAgeDays  = 14
)

// LevelTrace sits below debug and carries full request and response bodies.
const LevelTrace = slog.Level(-8)

// Init configures slog to write structured logs to a rotating file.
// Records are also copied to every mirror, which the web server uses for
// stderr. The terminal UI owns stdout and never passes a mirror.
func Init(cfg config.Config, mirrors ...io.Writer) (*slog.Logger, error) {
	level := parseLogLevel(cfg.LogLevel)
	handlerOptions := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelName,
	}

	logPath := Path(cfg)
	var sinks []io.Writer
	err := os.MkdirAll(filepath.Dir(logPath), 0700)
	if err == nil {
		sinks = append(sinks, &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
			Compress:   true,
		})
	}
	sinks = append(sinks, mirrors...)

	var out io.Writer = io.Discard
	switch len(sinks) {
	case 0:
	case 1:
		out = sinks[0]
	default:
		out = io.MultiWriter(sinks...)
	}

	logger := slog.New(newHandler(cfg.LogFormat, out, handlerOptions))
	slog.SetDefault(logger)
	return logger, err
}

// Path returns the log file location for cfg.
func Path(cfg config.Config) string {
	if p := strings.TrimSpace(cfg.LogFile); p != "" {
		return p
	}
	return filepath.Join(config.AppHome(), "logs", defaultLogFile)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

func replaceLevelName(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return slog.NewTextHandler(out, opts)
	default:
		return slog.NewJSONHandler(out, opts)
	}
}
