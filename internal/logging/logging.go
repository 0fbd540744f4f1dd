package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
	timeFormat        = "2006-01-02 15:04:05"
)

// Format selects how log lines are rendered
type Format int

const (
	// FormatConsole writes human readable, coloured lines
	FormatConsole Format = iota
	// FormatJSON writes one JSON object per line
	FormatJSON
)

// FormatFor picks console output for development and JSON elsewhere
func FormatFor(development bool) Format {
	if development {
		return FormatConsole
	}
	return FormatJSON
}

// Setup sets the global log level and output writers using console output.
// When filePath is empty only stdout is used.
func Setup(level, filePath string) {
	SetupFormat(level, filePath, FormatConsole)
}

// SetupFormat is Setup with an explicit output format
func SetupFormat(level, filePath string, format Format) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	var stdout io.Writer = os.Stdout
	if format == FormatConsole {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat}
	}
	log.Logger = zerolog.New(stdout).With().Timestamp().Logger()

	if filePath == "" {
		return
	}

	if err := ensureLogDir(filePath); err != nil {
		log.Error().Err(err).Str("path", filePath).Msg("Failed to prepare log directory; logging to console only")
		return
	}

	log.Logger = zerolog.New(multiWriter(stdout, filePath, format)).With().Timestamp().Logger()
}

// Verbosity maps a -v count onto a level name, keeping base when count is zero
func Verbosity(count int, base string) string {
	switch {
	case count >= 2:
		return "trace"
	case count == 1:
		return "debug"
	default:
		return base
	}
}

// ParseLevel converts a level name into a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func multiWriter(stdout io.Writer, filePath string, format Format) zerolog.LevelWriter {
	fileWriter := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	}

	if format == FormatJSON {
		return zerolog.MultiLevelWriter(stdout, fileWriter)
	}

	fileConsole := zerolog.ConsoleWriter{
		Out:        fileWriter,
		TimeFormat: timeFormat,
		NoColor:    true,
	}

	return zerolog.MultiLevelWriter(stdout, fileConsole)
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
