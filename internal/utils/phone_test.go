package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"012-345 6789", "+60123456789"},  // local format with punctuation
		{"0123456789", "+60123456789"},    // bare local number
		{"60123456789", "+60123456789"},   // already has country code
		{"+60 12-345 6789", "+60123456789"},
		{"123456789", "+60123456789"},     // no leading 0 and no 6: best-effort 60 prefix
		{"", ""},                          // empty passes through untouched
	}

	for _, tc := range cases {
		got := NormalizePhone(tc.in)
		if got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhoneKeepsDigitContent(t *testing.T) {
	// Numbers already starting with 6 only lose punctuation.
	got := NormalizePhone("6012 345 6789")
	if got != "+60123456789" {
		t.Errorf("got %q, want +60123456789", got)
	}
}
