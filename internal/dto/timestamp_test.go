package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampZonelessGetsUTC(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-03-01T09:30:00"`), &ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", ts.Location())
	}
	// stamped, not shifted
	if ts.Hour() != 9 || ts.Minute() != 30 {
		t.Fatalf("wall clock changed: %v", ts.Time)
	}
}

func TestTimestampOffsetPreserved(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-03-01T09:30:00+05:00"`), &ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, offset := ts.Zone()
	if offset != 5*3600 {
		t.Fatalf("expected +05:00 offset, got %d seconds", offset)
	}

	out, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"2024-03-01T09:30:00+05:00"` {
		t.Fatalf("offset not preserved on output: %s", out)
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"next tuesday"`), &ts); err == nil {
		t.Fatalf("expected error for unparseable timestamp")
	}
	if err := json.Unmarshal([]byte(`42`), &ts); err == nil {
		t.Fatalf("expected error for non-string timestamp")
	}
}
