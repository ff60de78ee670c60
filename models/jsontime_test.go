package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestJSONTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", `"2026-05-16T15:32:25Z"`, time.Date(2026, 5, 16, 15, 32, 25, 0, time.UTC)},
		{"fractional no zone", `"2026-05-16T15:32:25.123456"`, time.Date(2026, 5, 16, 15, 32, 25, 123456000, time.UTC)},
		{"no fraction no zone", `"2026-05-16T15:32:25"`, time.Date(2026, 5, 16, 15, 32, 25, 0, time.UTC)},
		{"bare date", `"2026-05-16"`, time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var jt JSONTime
			if err := json.Unmarshal([]byte(tt.input), &jt); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.input, err)
			}
			if !jt.Time().Equal(tt.want) {
				t.Errorf("got %v, want %v", jt.Time(), tt.want)
			}
		})
	}
}

func TestJSONTimeUnmarshalRejectsGarbage(t *testing.T) {
	var jt JSONTime
	if err := json.Unmarshal([]byte(`"next tuesday"`), &jt); err == nil {
		t.Error("expected an error for an unparseable date")
	}
}

func TestJSONTimeRoundTrip(t *testing.T) {
	orig := JSONTime(time.Date(2026, 5, 16, 15, 32, 25, 0, time.UTC))
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var back JSONTime
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Time().Equal(orig.Time()) {
		t.Errorf("round trip changed the instant: %v vs %v", back.Time(), orig.Time())
	}
}

func TestJSONTimeIsZero(t *testing.T) {
	var jt JSONTime
	if !jt.IsZero() {
		t.Error("zero value should report IsZero")
	}
	jt = JSONTime(time.Now())
	if jt.IsZero() {
		t.Error("populated value should not report IsZero")
	}
}
