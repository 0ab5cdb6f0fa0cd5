package prospect

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNumber_UnmarshalAndFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		str      string
	}{
		{"integer", `80`, 80, "80"},
		{"decimal", `55.5`, 55.5, "55.5"},
		{"trailing zero", `70.0`, 70, "70"},
		{"numeric string", `"72"`, 72, "72"},
		{"padded string", `" 64.5 "`, 64.5, " 64.5 "},
		{"empty string", `""`, 0, ""},
		{"non-numeric string", `"n/a"`, 0, "n/a"},
		{"null", `null`, 0, ""},
		{"true", `true`, 1, "true"},
		{"false", `false`, 0, "false"},
		{"object", `{"a":1}`, 0, ""},
		{"comma string", `"1,200"`, 0, "1,200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.input), &n); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
			}
			if got := n.Float(); got != tt.expected {
				t.Errorf("Expected Float() %v, got %v", tt.expected, got)
			}
			if got := n.String(); got != tt.str {
				t.Errorf("Expected String() %q, got %q", tt.str, got)
			}
		})
	}
}

func TestNumber_MissingField(t *testing.T) {
	var p Prospect
	if err := json.Unmarshal([]byte(`{"fullName": "Ada"}`), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !p.BoomerScore.IsZero() {
		t.Error("Expected missing Boomer Score to be zero")
	}
	if p.Boomer() != 0 {
		t.Errorf("Expected coerced boomer 0, got %v", p.Boomer())
	}
}

func TestNumber_PreservesJSONType(t *testing.T) {
	input := `{"Boomer Score":"72","Burnout Score":40}`

	var p Prospect
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	out, err := json.Marshal(struct {
		Boomer  Number `json:"b"`
		Burnout Number `json:"u"`
		Missing Number `json:"m,omitzero"`
	}{p.BoomerScore, p.BurnoutScore, p.CombinedAcquisitionScore})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	expected := `{"b":"72","u":40}`
	if string(out) != expected {
		t.Errorf("Expected %s, got %s", expected, out)
	}
}

func TestNumber_Truthy(t *testing.T) {
	tests := []struct {
		name     string
		n        Number
		expected bool
	}{
		{"missing", Number{}, false},
		{"zero", Num(0), false},
		{"positive", Num(12), true},
		{"empty string", Str(""), false},
		{"zero string", Str("0"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.Truthy(); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNumber_FloatSpellings(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"inf", 0},
		{"infinity", 0},
		{"NaN", 0},
		{"0x1p4", 0},
		{"1_000", 0},
		{"-0x10", 0},
		{"0x", 0},
		{"0b102", 0},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"0x10", 16},
		{"0XfF", 255},
		{"0o17", 15},
		{"0b101", 5},
		{".5", 0.5},
		{"5.", 5},
		{"+7", 7},
		{"1e2", 100},
		{"1e400", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Str(tt.input).Float(); got != tt.expected {
				t.Errorf("Str(%q).Float() = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}
