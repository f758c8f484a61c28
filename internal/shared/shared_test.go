package shared

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestLogger(t *testing.T) {
	t.Run("writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		WithLogger(logger, "run_id", "abc").Info("reconciled", "records", 3)

		out := buf.String()
		if !strings.Contains(out, "reconciled") || !strings.Contains(out, "run_id=abc") {
			t.Errorf("unexpected log output: %q", out)
		}
	})

	t.Run("SetLogLevelString", func(t *testing.T) {
		tt := []struct {
			level   string
			want    log.Level
			wantErr bool
		}{
			{level: "debug", want: log.DebugLevel},
			{level: "warn", want: log.WarnLevel},
			{level: "", want: log.InfoLevel},
			{level: "loud", want: log.InfoLevel, wantErr: true},
		}

		for _, tc := range tt {
			t.Run(tc.level, func(t *testing.T) {
				logger := NewLogger(&bytes.Buffer{})
				SetLogLevel(logger, log.InfoLevel)

				err := SetLogLevelString(logger, tc.level)
				if (err != nil) != tc.wantErr {
					t.Fatalf("SetLogLevelString() error = %v, wantErr %v", err, tc.wantErr)
				}
				if tc.wantErr && !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				if logger.GetLevel() != tc.want {
					t.Errorf("level = %v, want %v", logger.GetLevel(), tc.want)
				}
			})
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected distinct ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateID() returned invalid uuid %q: %v", a, err)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]any{"spotify_type": "album", "percentage_in_desc": nil}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if strings.Contains(string(compact), "\n") {
		t.Errorf("compact output should be single line: %s", compact)
	}
	if !strings.Contains(string(compact), `"percentage_in_desc":null`) {
		t.Errorf("expected null field, got %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"") {
		t.Errorf("pretty output should be indented: %s", pretty)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var v struct {
		Kind  string   `json:"spotify_type"`
		Ratio *float64 `json:"percentage_in_desc"`
	}

	if err := UnmarshalJSON([]byte(`{"spotify_type":"track","percentage_in_desc":null}`), &v); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if v.Kind != "track" || v.Ratio != nil {
		t.Errorf("unexpected value %+v", v)
	}

	if err := UnmarshalJSON([]byte(`{"spotify_type":`), &v); err == nil {
		t.Error("expected error for truncated input")
	}
}
