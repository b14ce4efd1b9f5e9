package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/strideapp/stride/internal/constants"
)

// std is the package logger. It discards everything until Init points it
// at a real sink, so early startup paths can log without ceremony.
var std = log.New(io.Discard)

// Config controls where Init sends log output.
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init routes logs to a rotating file under <configdir>/logs. Debug mode
// lowers the level to debug and mirrors output to stderr with caller
// locations; otherwise stderr stays clean for command output and the TUI.
func Init(cfg Config) error {
	dir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.AppName+".log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, w)
		level = log.DebugLevel
	}

	std = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func Debug(msg string, keyvals ...interface{}) { std.Debug(msg, keyvals...) }

func Info(msg string, keyvals ...interface{}) { std.Info(msg, keyvals...) }

func Warn(msg string, keyvals ...interface{}) { std.Warn(msg, keyvals...) }

func Error(msg string, keyvals ...interface{}) { std.Error(msg, keyvals...) }

// Fatal logs the message and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) { std.Fatal(msg, keyvals...) }
