// Package cli constructs the templatesync command-line interface. It wires
// the Cobra command hierarchy for the clone and dedupe commands, merges the
// embedded defaults with user configuration through Viper, and builds the
// zap logger shared by every command.
package cli
