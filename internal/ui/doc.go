// Package ui holds the colour themes shared by the CLI and the TUI: ANSI
// escape codes for line-oriented output and lipgloss colours for the
// dashboard.
package ui
