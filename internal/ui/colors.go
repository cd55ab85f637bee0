package ui

// Color accessor functions return the ANSI escape code for the named role in
// the currently active theme. They resolve at call time so theme changes
// (e.g. --no-color) take effect everywhere without plumbing.

// ColorGreen returns the success color code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorRed returns the error color code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorYellow returns the warning color code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color code.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorCyan returns the info color code.
func ColorCyan() string { return GetCurrentTheme().Info }

// ColorMagenta returns the secondary accent color code.
func ColorMagenta() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the reset code.
func ColorReset() string { return GetCurrentTheme().Reset }
