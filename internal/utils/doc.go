// Package utils exposes reusable helpers consumed by the templatesync commands.
//
// It houses the ConfigurationLoader (Viper with embedded defaults and
// TEMPLATESYNC_* environment overrides), the LoggerFactory that builds zap
// loggers, and the markdown summary tables printed after each run.
package utils
