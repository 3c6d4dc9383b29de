package sexp

import "testing"

func TestEncodeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"10k", `"10k"`},
		{`path with "quotes"`, `"path with \"quotes\""`},
		{`C:\lib\parts`, `"C:\\lib\\parts"`},
		{"line1\nline2", `"line1\nline2"`},
		{"a\rb", `"a\rb"`},
		{"a\tb", `"a\tb"`},
		{"10kΩ ±1%", `"10kΩ ±1%"`},
	}
	for _, tt := range tests {
		if got := EncodeString(tt.in); got != tt.want {
			t.Errorf("EncodeString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDecodeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`""`, ""},
		{`"10k"`, "10k"},
		{`"path with \"quotes\""`, `path with "quotes"`},
		{`"C:\\lib\\parts"`, `C:\lib\parts`},
		{`"line1\nline2"`, "line1\nline2"},
		{`"a\rb"`, "a\rb"},
		{`"a\tb"`, "a\tb"},
		// Unknown escapes pass through literally.
		{`"a\qb"`, `a\qb`},
	}
	for _, tt := range tests {
		if got := DecodeString(tt.in); got != tt.want {
			t.Errorf("DecodeString(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	// For any quoted-string token using the canonical escape set,
	// encode(decode(t)) must reproduce the token byte-for-byte.
	tokens := []string{
		`""`,
		`"100nF"`,
		`"path with \"quotes\""`,
		`"tab\there"`,
		`"back\\slash"`,
		`"multi\nline"`,
		`"Ω μF ±"`,
	}
	for _, tok := range tokens {
		if got := EncodeString(DecodeString(tok)); got != tok {
			t.Errorf("Round trip of %s produced %s", tok, got)
		}
	}
}

func TestFormatBool(t *testing.T) {
	if got := FormatBool(true); got != "yes" {
		t.Errorf("FormatBool(true) = %s, want yes", got)
	}
	if got := FormatBool(false); got != "no" {
		t.Errorf("FormatBool(false) = %s, want no", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-42, "-42"},
		{20250114, "20250114"},
		{4.7, "4.7"},
		{-0.5, "-0.5"},
		{1.27, "1.27"},
		{2.54, "2.54"},
		{100.33, "100.33"},
		{0.0001, "0.0001"},
		{0.00005, "0.00005"},
		{1.5e9, "1500000000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatInt(t *testing.T) {
	if got := FormatInt(-7); got != "-7" {
		t.Errorf("FormatInt(-7) = %s", got)
	}
}
