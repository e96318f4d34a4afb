package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/fibwhole/internal/wholenumber"
)

func TestFieldHelpers(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	value := wholenumber.MustNew(1_000_000)
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("algo", "list"), "algo", "list"},
		{"Int", Int("groups", 42), "groups", 42},
		{"Uint64", Uint64("n", 12345678901234567890), "n", uint64(12345678901234567890)},
		{"Float64", Float64("progress", 0.5), "progress", 0.5},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(errBoom), "error", errBoom},
		{"Err nil", Err(nil), "error", nil},
		{"Stringer", Stringer("value", value), "value", value},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

func TestNewLogger_Component(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewLogger(&buf, "orchestration").Info("calculation started", Uint64("n", 1000))

	out := buf.String()
	for _, want := range []string{`"component":"orchestration"`, "calculation started", `"n":1000`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestNewDefaultLogger(t *testing.T) {
	t.Parallel()
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		log      func(l Logger)
		contains []string
	}{
		{
			name:     "info with fields",
			log:      func(l Logger) { l.Info("term computed", String("algo", "list"), Int("groups", 7)) },
			contains: []string{"term computed", "list", `"groups":7`},
		},
		{
			name:     "error with cause",
			log:      func(l Logger) { l.Error("calculation failed", errors.New("group cap reached"), Uint64("n", 31)) },
			contains: []string{`"level":"error"`, "calculation failed", "group cap reached", `"n":31`},
		},
		{
			name:     "error without cause",
			log:      func(l Logger) { l.Error("mismatch", nil) },
			contains: []string{`"level":"error"`, "mismatch"},
		},
		{
			name:     "debug",
			log:      func(l Logger) { l.Debug("progress", Float64("value", 0.25)) },
			contains: []string{`"level":"debug"`, "0.25"},
		},
		{
			name:     "printf",
			log:      func(l Logger) { l.Printf("F(%d) has %d digits", 100, 21) },
			contains: []string{"F(100) has 21 digits"},
		},
		{
			name:     "println",
			log:      func(l Logger) { l.Println("done", 3, "calculators") },
			contains: []string{"done 3 calculators"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel)))
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got: %s", want, out)
				}
			}
		})
	}
}

func TestZerologAdapter_FieldTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"int64", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64", Uint64("huge", 18446744073709551615), "18446744073709551615"},
		{"bool", Field{Key: "match", Value: true}, `"match":true`},
		{"error", Field{Key: "cause", Value: errors.New("oops")}, `"cause":"oops"`},
		{"stringer", Stringer("value", wholenumber.MustNew(1_234_567)), `"value":"1,234,567"`},
		{"struct", Field{Key: "data", Value: struct{ Groups int }{Groups: 3}}, `"Groups":3`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("fields", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output should contain %s, got: %s", tt.contains, buf.String())
			}
		})
	}
}

func TestNewConsoleLogger_Verbosity(t *testing.T) {
	t.Parallel()

	var quiet, verbose bytes.Buffer
	quietLogger := NewConsoleLogger(&quiet, false)
	verboseLogger := NewConsoleLogger(&verbose, true)
	quietLogger.Debug().Msg("hidden")
	verboseLogger.Debug().Msg("shown")

	if quiet.Len() != 0 {
		t.Errorf("debug entry written without verbose: %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "shown") {
		t.Errorf("debug entry missing with verbose: %q", verbose.String())
	}
}

func TestLoggerInterface(t *testing.T) {
	t.Parallel()
	var _ Logger = NewLogger(&bytes.Buffer{}, "test")
	var _ Logger = NewZerologAdapter(zerolog.Nop())
}
