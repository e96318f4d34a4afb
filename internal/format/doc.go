// Package format holds the display helpers shared by the CLI and the TUI:
// durations, counts, progress bars and ETA estimation.
package format
