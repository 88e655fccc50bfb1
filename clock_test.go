package busevents

import (
	"strings"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"morning", "7:00", 25200},
		{"zero padded", "07:00", 25200},
		{"midnight", "0:00", 0},
		{"end of day", "23:59", 86340},
		{"single digit minute", "7:5", 25500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if err != nil {
				t.Fatalf("ParseClock(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
			t.Logf("✓ %q -> %d seconds", tt.input, got)
		})
	}
}

func TestParseClockRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "want H:MM"},
		{"no colon", "700", "want H:MM"},
		{"too many fields", "7:00:00", "want H:MM"},
		{"letters in hour", "ab:00", "bad hour"},
		{"letters in minute", "7:cd", "bad minute"},
		{"hour past midnight", "24:00", "hour out of range"},
		{"negative hour", "-1:00", "hour out of range"},
		{"minute overflow", "7:60", "minute out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClock(tt.input)
			if err == nil {
				t.Fatalf("ParseClock(%q) accepted, want error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseClock(%q) error = %q, want mention of %q", tt.input, err, tt.wantErr)
			}
			t.Logf("✓ %q rejected: %v", tt.input, err)
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"midnight", 0, "00:00:00"},
		{"morning", 25200, "07:00:00"},
		{"last second", 86399, "23:59:59"},
		{"exactly one day", 86400, "00:00:00+1d"},
		{"past midnight", 90000, "01:00:00+1d"},
		{"two days in", 176400, "01:00:00+2d"},
		{"negative clamps", -5, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatClock(tt.seconds); got != tt.want {
				t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, raw := range []string{"0:00", "6:30", "12:05", "23:59"} {
		secs, err := ParseClock(raw)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", raw, err)
		}
		back := FormatClock(secs)
		reparsed, err := ParseClock(back[:5])
		if err != nil {
			t.Fatalf("reparse %q: %v", back, err)
		}
		if reparsed != secs {
			t.Errorf("%q -> %d -> %q -> %d, round trip drifted", raw, secs, back, reparsed)
		}
	}
	t.Logf("✓ parse/format round trips are stable")
}
