// Package filesystem adapts the operating system filesystem to shared.FileSystem.
package filesystem
