// Package ui provides theme and color support for the application's user
// interface. It defines color schemes and provides ANSI escape code functions
// for consistent styling across the CLI and TUI presentation layers.
package ui
