package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Config struct {
	Level  Level  `yaml:"level"  toml:"level"`
	Format Format `yaml:"format" toml:"format"`
	Output string `yaml:"output" toml:"output"`
}

type Logger struct {
	*slog.Logger
}

func New(config Config) *Logger {
	return &Logger{
		Logger: slog.New(newHandler(config, writerFor(config.Output))),
	}
}

// NewWithWriter builds a logger writing to w, ignoring config.Output.
func NewWithWriter(config Config, w io.Writer) *Logger {
	return &Logger{
		Logger: slog.New(newHandler(config, w)),
	}
}

func writerFor(output string) io.Writer {
	switch output {
	case "stderr":
		return os.Stderr
	case "stdout", "":
		return os.Stdout
	case "discard":
		return io.Discard
	}

	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fail to open custom logger file. Using 'stdout' error: %s", err.Error())
		return os.Stdout
	}

	return file
}

func newHandler(config Config, writer io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: config.Level.slogLevel(),
	}

	switch config.Format {
	case FormatJSON:
		return slog.NewJSONHandler(writer, opts)
	case FormatText:
		fallthrough
	default:
		return slog.NewTextHandler(writer, opts)
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent returns a child logger tagging every record with component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", component),
	}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.Logger.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.Logger.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.Logger.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.Logger.Error(msg, args...)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
