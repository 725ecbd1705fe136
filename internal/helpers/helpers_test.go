package helpers

import "testing"

func TestIsPasswordStrong(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Abcdef1!", true},
		{"Str0ng&Pass", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoNumbers!!", false},
		{"NoSpecial123", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsPasswordStrong(tc.password); got != tc.want {
			t.Errorf("IsPasswordStrong(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}

func TestStringTrim(t *testing.T) {
	if got := StringTrim("  hello  "); got != "hello" {
		t.Errorf("StringTrim = %q, want %q", got, "hello")
	}
}
