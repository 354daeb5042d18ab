package core

import (
	"math"
	"testing"
)

const tol = 1e-9

// ----------------------------------------------------------------------------
// NormalizeHeight Tests
// ----------------------------------------------------------------------------

func TestNormalizeHeight(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		wantOK bool
		want   float64
	}{
		{name: "centimetres pass through", input: 180.0, wantOK: true, want: 180},
		{name: "threshold is centimetres", input: 50.0, wantOK: true, want: 50},
		{name: "feet and inches", input: 5.8, wantOK: true, want: 5*30.48 + 8*2.54},
		{name: "feet half inch digit", input: 5.5, wantOK: true, want: 5*30.48 + 5*2.54},
		{name: "whole feet", input: 6.0, wantOK: true, want: 6 * 30.48},
		{name: "three feet is feet", input: 3.0, wantOK: true, want: 3 * 30.48},
		{name: "inches digit rounds to ten without carry", input: 5.95, wantOK: true, want: 5*30.48 + 10*2.54},
		{name: "metres", input: 1.75, wantOK: true, want: 175},
		{name: "metres below feet threshold", input: 2.99, wantOK: true, want: 299},
		{name: "numeric text", input: " 1.60 ", wantOK: true, want: 160},
		{name: "integer cell", input: int64(170), wantOK: true, want: 170},
		{name: "missing", input: nil, wantOK: false},
		{name: "blank text", input: "  ", wantOK: false},
		{name: "non-numeric text", input: "five foot", wantOK: false},
		{name: "nan text", input: "nan", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeHeight(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("NormalizeHeight(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > tol {
				t.Errorf("NormalizeHeight(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeHeight_KnownValues(t *testing.T) {
	if got, _ := NormalizeHeight(180.0); got != 180 {
		t.Errorf("180 -> %v", got)
	}
	if got, _ := NormalizeHeight(5.8); math.Abs(got-172.72) > tol {
		t.Errorf("5.8 -> %v, want 172.72", got)
	}
	if got, _ := NormalizeHeight(1.75); math.Abs(got-175.0) > tol {
		t.Errorf("1.75 -> %v, want 175", got)
	}
}

func TestNormalizeHeight_Idempotent(t *testing.T) {
	// Every input from half a metre upwards lands at or above the centimetre
	// threshold, so a second pass changes nothing.
	for h := 0.5; h < 260; h += 0.37 {
		once, ok := NormalizeHeight(h)
		if !ok {
			t.Fatalf("NormalizeHeight(%v) missing", h)
		}
		twice, _ := NormalizeHeight(once)
		if twice != once {
			t.Errorf("h=%v: once=%v twice=%v", h, once, twice)
		}
	}
}

// ----------------------------------------------------------------------------
// Categorical Normalizer Tests
// ----------------------------------------------------------------------------

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"male", "Male"},
		{"Female", "Female"},
		{"mARRIED", "MARRIED"},
		{"never married", "Never married"},
		{"élodie", "Élodie"},
		{"", ""},
		{"1st", "1st"},
	}
	for _, tt := range tests {
		if got := CapitalizeFirst(tt.input); got != tt.want {
			t.Errorf("CapitalizeFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCanonicalMaritalStatus(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"divorced/separated", "Divorced"},
		{"Divorced/separated", "Divorced"},
		{"married", "Married"},
		{"DIVORCED/SEPARATED", "DIVORCED/SEPARATED"},
		{"widowed", "Widowed"},
	}
	for _, tt := range tests {
		if got := CanonicalMaritalStatus(tt.input); got != tt.want {
			t.Errorf("CanonicalMaritalStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLowercaseClean(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"lowercases and trims", "  Married ", "married"},
		{"nan becomes missing", "nan", nil},
		{"NaN text becomes missing", " NaN ", nil},
		{"blank becomes missing", "   ", nil},
		{"missing stays missing", nil, nil},
		{"numbers pass through", 42.0, 42.0},
		{"keeps inner spaces", "Never  Married", "never  married"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LowercaseClean(tt.input); got != tt.want {
				t.Errorf("LowercaseClean(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
