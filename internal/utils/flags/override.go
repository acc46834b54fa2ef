package flags

import "github.com/spf13/pflag"

// Override replaces *target with the value read by get when the named flag was set on the command line.
// Unset flags and lookup failures leave the configured value in place.
func Override[T any](flagSet *pflag.FlagSet, name string, target *T, get func(string) (T, error)) {
	if flagSet == nil || target == nil || !flagSet.Changed(name) {
		return
	}
	value, lookupError := get(name)
	if lookupError != nil {
		return
	}
	*target = value
}
