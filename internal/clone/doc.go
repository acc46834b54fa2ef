// Package clone implements the bulk repository cloner.
//
// The service reads a newline-delimited list of git URLs, collapses duplicates,
// and maps each URL to a directory under the clone root using a naming scheme
// (owner__repository by default). Existing directories are refreshed with
// "git -C <dir> pull"; missing ones are cloned with terminal prompts disabled so
// private repositories fail fast instead of blocking. Work runs on a bounded
// errgroup and one status line is printed per repository as soon as it finishes.
package clone
