package validate

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	valid := []string{"a@x.com", "first.last@sub.domain.org", " padded@x.com "}
	for _, v := range valid {
		if msg := Email(v); msg != "" {
			t.Errorf("Email(%q) = %q, want valid", v, msg)
		}
	}

	invalid := []string{"", "plain", "@x.com", "a@", "a@nodot", "two@@x.com", "sp ace@x.com"}
	for _, v := range invalid {
		if msg := Email(v); msg != "Email is not valid" {
			t.Errorf("Email(%q) = %q, want %q", v, msg, "Email is not valid")
		}
	}
}

func TestUsername(t *testing.T) {
	valid := []string{"alice", "alice.ann", "a_b_c", "User123", "abc"}
	for _, v := range valid {
		if msg := Username(v); msg != "" {
			t.Errorf("Username(%q) = %q, want valid", v, msg)
		}
	}

	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "ab"},
		{"too long", strings.Repeat("a", MaxUsernameLength+1)},
		{"illegal characters", "alice!"},
		{"spaces inside", "al ice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if Username(tc.in) == "" {
				t.Errorf("Username(%q) accepted, want rejection", tc.in)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	valid := []string{"Secret123!", "abcdefg1", "12345678a"}
	for _, v := range valid {
		if msg := Password(v); msg != "" {
			t.Errorf("Password(%q) = %q, want valid", v, msg)
		}
	}

	cases := []struct {
		name string
		in   string
	}{
		{"too short", "abc1"},
		{"too long", strings.Repeat("a", 72) + "1"},
		{"letters only", "abcdefgh"},
		{"digits only", "12345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if Password(tc.in) == "" {
				t.Errorf("Password(%q) accepted, want rejection", tc.in)
			}
		})
	}
}

func TestPasswordsEqual(t *testing.T) {
	if msg := PasswordsEqual("Secret123!", "Secret123!"); msg != "" {
		t.Errorf("PasswordsEqual(match) = %q, want valid", msg)
	}
	if msg := PasswordsEqual("Secret123!", "Other123!"); msg != "The password must be equal" {
		t.Errorf("PasswordsEqual(mismatch) = %q, want %q", msg, "The password must be equal")
	}
	// Equality is a distinct rule from complexity: it fires even for
	// weak inputs.
	if msg := PasswordsEqual("x", "y"); msg == "" {
		t.Error("PasswordsEqual should compare regardless of complexity")
	}
}

func TestFullName(t *testing.T) {
	if msg := FullName("Alice A"); msg != "" {
		t.Errorf("FullName(valid) = %q", msg)
	}
	if FullName("") == "" || FullName("   ") == "" {
		t.Error("FullName should reject empty values")
	}
	if FullName(strings.Repeat("a", MaxFullNameLength+1)) == "" {
		t.Error("FullName should reject over-long values")
	}
}

func TestBio(t *testing.T) {
	if msg := Bio("I paint."); msg != "" {
		t.Errorf("Bio(valid) = %q", msg)
	}
	// An empty bio is valid input — clearing is the engine's business.
	if msg := Bio(""); msg != "" {
		t.Errorf("Bio(\"\") = %q, want valid", msg)
	}
	if Bio(strings.Repeat("a", MaxBioLength+1)) == "" {
		t.Error("Bio should reject over-long values")
	}
}
