// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger turns shell command lifecycle events into short
// progress lines (garbage collection, pruning, stash counting) while detailed
// telemetry continues to flow through the structured logger.
package ui
