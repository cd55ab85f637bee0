// Package apperrors defines the application's error types and exit codes.
// It provides structured errors for configuration, validation, strategy
// failures and timeouts, plus helpers for wrapping errors with context and
// mapping them to process exit codes.
package apperrors
