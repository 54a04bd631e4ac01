// Package ui renders command lifecycle events for human operators.
//
// It adapts execshell command notifications into console messages emitted
// through a zap logger configured for human-readable output.
package ui
