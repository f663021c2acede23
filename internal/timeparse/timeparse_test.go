package timeparse

import (
	"testing"

	"github.com/d-olmeda/dockside-tui/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   models.TimeOfDay
		wantOK bool
	}{
		{"Single", "09:00", models.TimeOfDay{Hour: 9}, true},
		{"SingleWithSeconds", "10:00:30", models.TimeOfDay{Hour: 10, Second: 30}, true},
		{"SingleNoLeadingZero", "9:05", models.TimeOfDay{Hour: 9, Minute: 5}, true},
		{"Range", "09:00-09:30", models.TimeOfDay{Hour: 9}, true},
		{"RangeWithSpaces", "09:00 - 09:30", models.TimeOfDay{Hour: 9}, true},
		{"RangePadded", "  12:00-12:30  ", models.TimeOfDay{Hour: 12}, true},
		{"Garbage", "garbage", models.TimeOfDay{}, false},
		{"Empty", "", models.TimeOfDay{}, false},
		{"HourOutOfRange", "25:00", models.TimeOfDay{}, false},
		{"MinuteOutOfRange", "10:75", models.TimeOfDay{}, false},
		{"BareHour", "10", models.TimeOfDay{}, false},
		{"TooManyParts", "10:00:00:00", models.TimeOfDay{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitClock(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   models.TimeOfDay
		wantOK bool
	}{
		{"HourMinute", "10:30", models.TimeOfDay{Hour: 10, Minute: 30}, true},
		{"HourMinuteSecond", "10:30:15", models.TimeOfDay{Hour: 10, Minute: 30, Second: 15}, true},
		{"NoColon", "10", models.TimeOfDay{}, false},
		{"Garbage", "a:b", models.TimeOfDay{}, false},
		{"Range", "09:00-09:30", models.TimeOfDay{}, false},
		{"OutOfRange", "99:00", models.TimeOfDay{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SplitClock(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("SplitClock(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SplitClock(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
