package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tagsync/pkg/constants"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is the output format (auto, json, console, pretty)
	Format string

	// Output is where to write logs (stderr, stdout, discard, or file path).
	// A file opened from here stays open for the life of the process.
	Output string

	// Writer, when set, receives the logs and Output is ignored. Use it
	// with OpenOutput to control when a log file is closed.
	Writer io.Writer

	// TimeFormat for timestamps (kitchen, rfc3339, unix, etc.)
	TimeFormat string

	// NoColor disables color output in console mode
	NoColor bool

	// AddCaller includes file:line in log output
	AddCaller bool

	// Fields are default fields to include in all logs
	Fields map[string]any
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
		AddCaller:  false,
		Fields:     make(map[string]any),
	}
}

// NewLoggerFromConfig creates a new logger from configuration.
// The level is applied to the returned logger only; the zerolog global
// level is left alone so that several loggers can coexist in one process.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := ParseLevel(cfg.Level)
	writer := getWriter(cfg)

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	if len(cfg.Fields) > 0 {
		ctx := logger.With()
		for k, v := range cfg.Fields {
			ctx = addField(ctx, k, v)
		}
		logger = ctx.Logger()
	}

	return logger
}

// OpenOutput resolves an Output value. A file path is opened for append
// and the returned func closes it; for the standard streams and discard close is a
// no-op.
func OpenOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout, noop, nil
	case "", "stderr":
		return os.Stderr, noop, nil
	case "discard", "none":
		return io.Discard, noop, nil
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

// getWriter creates the appropriate writer based on configuration
func getWriter(cfg *Config) io.Writer {
	output := cfg.Writer
	if output == nil {
		w, _, err := OpenOutput(cfg.Output)
		if err != nil {
			w = os.Stderr
		}
		output = w
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := output.(*os.File); ok && f == os.Stderr && stderrIsTerminal() {
			format = "console"
		}
	}

	switch format {
	case "console", "pretty":
		return zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: parseTimeFormat(cfg.TimeFormat),
			NoColor:    cfg.NoColor,
		}
	default:
		return output
	}
}

// ParseLevel parses a log level name, falling back to info. "warning",
// "none" and "off" are accepted besides zerolog's own names.
func ParseLevel(level string) zerolog.Level {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	default:
		parsed, err := zerolog.ParseLevel(l)
		if err != nil {
			return zerolog.InfoLevel
		}
		return parsed
	}
}

// timeFormats maps the names accepted in Config.TimeFormat to layouts.
// An empty layout makes the console writer print Unix time.
var timeFormats = map[string]string{
	"kitchen":  time.Kitchen,
	"rfc3339":  time.RFC3339,
	"datetime": time.DateTime,
	"unix":     "",
}

func parseTimeFormat(format string) string {
	if layout, ok := timeFormats[strings.ToLower(format)]; ok {
		return layout
	}
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}

// addField adds a field to the context based on its type
func addField(ctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case int:
		return ctx.Int(key, v)
	case int64:
		return ctx.Int64(key, v)
	case float64:
		return ctx.Float64(key, v)
	case bool:
		return ctx.Bool(key, v)
	case time.Time:
		return ctx.Time(key, v)
	case error:
		if key == "error" || key == "err" {
			return ctx.Err(v)
		}
		return ctx.Str(key, v.Error())
	default:
		return ctx.Interface(key, v)
	}
}
