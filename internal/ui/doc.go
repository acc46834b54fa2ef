// Package ui adapts git lifecycle events into concise console messages.
//
// ConsoleCommandEventLogger is attached to the shell executor when the console
// log format is selected, so clone and pull progress reads naturally while the
// structured logger keeps the detailed fields.
package ui
