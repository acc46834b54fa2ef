// Package flags provides helpers for binding standardized flags to Cobra commands.
package flags

import "github.com/spf13/cobra"

// DryRunFlag describes the preview flag carried by commands that modify files.
type DryRunFlag struct {
	Name      string
	Shorthand string
	Usage     string
	Default   bool
}

// Bind registers the flag on the command's local flag set. A blank name binds nothing.
func (flag DryRunFlag) Bind(command *cobra.Command) {
	if command == nil || len(flag.Name) == 0 {
		return
	}
	command.Flags().BoolP(flag.Name, flag.Shorthand, flag.Default, flag.Usage)
}

// Resolve returns the flag value when it was set on the command line and configured otherwise.
func (flag DryRunFlag) Resolve(command *cobra.Command, configured bool) bool {
	if command == nil || len(flag.Name) == 0 || !command.Flags().Changed(flag.Name) {
		return configured
	}
	value, lookupError := command.Flags().GetBool(flag.Name)
	if lookupError != nil {
		return configured
	}
	return value
}
