package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	flagutils "github.com/temirov/templatesync/internal/utils/flags"
)

const (
	consoleTimeLayoutConstant        = "15:04:05"
	logLevelErrorTemplateConstant    = "log level: %w"
	logFormatErrorTemplateConstant   = "log format: %w"
	jsonZapEncodingStringConstant    = "json"
	consoleZapEncodingStringConstant = "console"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Supported log formats. Console output is meant for people running the tool interactively.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// LogLevelChoices lists accepted log level values with info as the default.
var LogLevelChoices = flagutils.ChoiceSet{
	Default: string(LogLevelInfo),
	Values:  []string{string(LogLevelDebug), string(LogLevelInfo), string(LogLevelWarn), string(LogLevelError)},
}

// LogFormatChoices lists accepted log format values with structured as the default.
var LogFormatChoices = flagutils.ChoiceSet{
	Default: string(LogFormatStructured),
	Values:  []string{string(LogFormatStructured), string(LogFormatConsole)},
}

var zapLevels = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// ParseLogFormat normalizes a configured format value, reporting whether it is the human-readable console format.
// Unsupported values are returned unchanged so CreateLogger can reject them.
func ParseLogFormat(rawFormat string) (LogFormat, bool) {
	normalized, parseError := LogFormatChoices.Parse(rawFormat)
	if parseError != nil {
		return LogFormat(rawFormat), false
	}
	return LogFormat(normalized), LogFormat(normalized) == LogFormatConsole
}

// CreateLogger produces a zap.Logger writing to standard error that honors the requested log level and format.
// Blank values fall back to info and structured.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	level, levelError := LogLevelChoices.Parse(string(requestedLogLevel))
	if levelError != nil {
		return nil, fmt.Errorf(logLevelErrorTemplateConstant, levelError)
	}
	format, formatError := LogFormatChoices.Parse(string(requestedLogFormat))
	if formatError != nil {
		return nil, fmt.Errorf(logFormatErrorTemplateConstant, formatError)
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLevels[LogLevel(level)])
	configuration.Encoding = jsonZapEncodingStringConstant
	configuration.DisableStacktrace = true

	if LogFormat(format) == LogFormatConsole {
		configuration.Encoding = consoleZapEncodingStringConstant
		configuration.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		configuration.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(consoleTimeLayoutConstant)
		configuration.EncoderConfig.CallerKey = zapcore.OmitKey
	}

	return configuration.Build()
}
