package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("bad value %d for %s", 0, "workers")
	want := "bad value 0 for workers"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Error("NewConfigError result should match ConfigError with errors.As")
	}
}

func TestStrategyError(t *testing.T) {
	cause := errors.New("worker exploded")
	err := StrategyError{Strategy: "shared", Cause: cause}

	if !strings.Contains(err.Error(), "shared") {
		t.Errorf("Error() = %q, should name the strategy", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("StrategyError should unwrap to its cause")
	}
}

func TestTimeoutError(t *testing.T) {
	err := TimeoutError{Operation: "benchmark", Limit: 5 * time.Minute}
	if !strings.Contains(err.Error(), "benchmark") || !strings.Contains(err.Error(), "5m") {
		t.Errorf("Error() = %q, should include operation and limit", err.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := ValidationError{Field: "method", Message: "unknown"}
	if !strings.Contains(err.Error(), "method") || !strings.Contains(err.Error(), "unknown") {
		t.Errorf("Error() = %q, should include field and message", err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		if WrapError(nil, "context") != nil {
			t.Error("WrapError(nil) should return nil")
		}
	})

	t.Run("wrapped error unwraps", func(t *testing.T) {
		cause := errors.New("inner")
		err := WrapError(cause, "running %s", "shared")
		if !errors.Is(err, cause) {
			t.Error("wrapped error should match cause with errors.Is")
		}
		if !strings.Contains(err.Error(), "running shared") {
			t.Errorf("Error() = %q, should include context", err.Error())
		}
	})
}

func TestIsContextError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped canceled", fmt.Errorf("run: %w", context.Canceled), true},
		{"other", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleBenchmarkError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"nil", nil, ExitSuccess},
		{"timeout", fmt.Errorf("run: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"generic", errors.New("boom"), ExitErrorGeneric},
		{"strategy wrapping generic", StrategyError{Strategy: "shared", Cause: errors.New("boom")}, ExitErrorGeneric},
		{"strategy wrapping timeout", StrategyError{Strategy: "shared", Cause: context.DeadlineExceeded}, ExitErrorTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := HandleBenchmarkError(tt.err, &buf); got != tt.wantCode {
				t.Errorf("HandleBenchmarkError(%v) = %d, want %d", tt.err, got, tt.wantCode)
			}
			if tt.err != nil && !strings.Contains(buf.String(), "Error:") {
				t.Errorf("expected diagnostic output, got %q", buf.String())
			}
		})
	}
}
