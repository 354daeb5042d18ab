package core

import (
	"math"
	"testing"
)

// ----------------------------------------------------------------------------
// ToNumber Tests
// ----------------------------------------------------------------------------

func TestToNumber_Cells(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"float", 72.5, 72.5, true},
		{"int64", int64(40), 40, true},
		{"int", 3, 3, true},
		{"padded text", "  81.2 ", 81.2, true},
		{"negative text", "-4", -4, true},
		{"nil", nil, 0, false},
		{"empty text", "", 0, false},
		{"word", "heavy", 0, false},
		{"nan float", math.NaN(), 0, false},
		{"inf float", math.Inf(1), 0, false},
		{"nan text", "NaN", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ToNumber(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ToNumber(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNumberCell(t *testing.T) {
	if got := numberCell("12"); got != 12.0 {
		t.Errorf("numberCell(\"12\") = %v, want 12", got)
	}
	if got := numberCell("twelve"); got != nil {
		t.Errorf("numberCell(\"twelve\") = %v, want nil", got)
	}
}

// ----------------------------------------------------------------------------
// ToText Tests
// ----------------------------------------------------------------------------

func TestToText(t *testing.T) {
	tests := []struct {
		input  any
		want   string
		wantOK bool
	}{
		{"Male", "Male", true},
		{"", "", true},
		{int64(7), "7", true},
		{1.5, "1.5", true},
		{nil, "", false},
	}

	for _, tt := range tests {
		got, ok := ToText(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ToText(%v) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}
