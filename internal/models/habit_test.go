package models

import "testing"

func TestParseHabitKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    HabitKind
		wantErr bool
	}{
		{"good", "good", HabitKindGood, false},
		{"bad", "bad", HabitKindBad, false},
		{"neutral", "neutral", HabitKindNeutral, false},
		{"mixed case", "Good", HabitKindGood, false},
		{"surrounding whitespace", "  bad  ", HabitKindBad, false},
		{"unknown", "great", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHabitKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHabitKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHabitKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHabitKindValid(t *testing.T) {
	for _, kind := range HabitKinds() {
		if !kind.Valid() {
			t.Errorf("HabitKind(%q).Valid() = false, want true", kind)
		}
	}
	if HabitKind("great").Valid() {
		t.Error(`HabitKind("great").Valid() = true, want false`)
	}
	if HabitKind("").Valid() {
		t.Error(`HabitKind("").Valid() = true, want false`)
	}
}
