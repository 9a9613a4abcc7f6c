package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("prod", &buf)
	l.Info().Int64("doctor_id", 101).Msg("read reviews failed")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if line["service"] != "daleel" || line["message"] != "read reviews failed" {
		t.Fatalf("unexpected line: %v", line)
	}
}

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetLevel("warn")
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("level = %v", zerolog.GlobalLevel())
	}
	SetLevel("nonsense")
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %v", zerolog.GlobalLevel())
	}
}
