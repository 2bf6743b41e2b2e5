package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options selects how process logs are written. Zero values mean console
// output at info level on stderr.
type Options struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// Override applies the --json and --debug flags on top of configured options.
func (o Options) Override(json, debug bool) Options {
	if json {
		o.Format = FormatJSON
	}
	if debug {
		o.Level = zapcore.DebugLevel.String()
	}
	return o
}

// New builds the process logger. Records go to stderr by default so command
// output on stdout stays machine readable.
func New(opts Options) (*zap.Logger, error) {
	encoding := opts.Format
	switch encoding {
	case "":
		encoding = FormatConsole
	case FormatConsole, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}

	output := opts.Output
	if output == "" {
		output = "stderr"
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	return cfg.Build()
}

// Truncate shortens s to limit runes, appending an ellipsis when something was cut.
// Used for prompt and response previews in debug logs.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
