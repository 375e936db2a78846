package logger

import "testing"

func TestRedactID(t *testing.T) {
	cases := []struct {
		id          string
		development bool
		want        string
	}{
		{"", false, ""},
		{"", true, ""},
		{"guest-1234567890", false, "[redacted]"},
		{"guest-1234567890", true, "guest-12..."},
		{"short", true, "short"},
		{"short", false, "[redacted]"},
	}

	for _, tc := range cases {
		if got := RedactID(tc.id, tc.development); got != tc.want {
			t.Fatalf("RedactID(%q, %v) = %q, want %q", tc.id, tc.development, got, tc.want)
		}
	}
}
