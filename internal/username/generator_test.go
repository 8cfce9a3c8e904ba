package username

import (
	"strings"
	"testing"
	"unicode"
)

func TestFromEmail_DerivesFromLocalPart(t *testing.T) {
	g := New()

	candidate := g.FromEmail("carol.smith@example.com")
	if !strings.HasPrefix(candidate, "carol.smith") {
		t.Errorf("FromEmail() = %q, want prefix %q", candidate, "carol.smith")
	}

	suffix := candidate[len("carol.smith"):]
	if len(suffix) != randomDigits {
		t.Fatalf("suffix = %q, want %d digits", suffix, randomDigits)
	}
	for _, r := range suffix {
		if !unicode.IsDigit(r) {
			t.Errorf("suffix %q contains non-digit %q", suffix, r)
		}
	}
}

func TestFromEmail_DropsIllegalCharacters(t *testing.T) {
	g := New()

	candidate := g.FromEmail("Carol+Smith!@example.com")
	for _, r := range candidate {
		ok := r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.' || r == '_'
		if !ok {
			t.Errorf("candidate %q contains illegal rune %q", candidate, r)
		}
	}
}

func TestFromEmail_UnusableLocalPartFallsBack(t *testing.T) {
	g := New()

	for _, email := range []string{"++@example.com", "@example.com", ""} {
		candidate := g.FromEmail(email)
		if !strings.HasPrefix(candidate, "user") {
			t.Errorf("FromEmail(%q) = %q, want the %q fallback", email, candidate, "user")
		}
	}
}

func TestFromEmail_StaysWithinUsernameBounds(t *testing.T) {
	g := New()

	candidate := g.FromEmail(strings.Repeat("a", 100) + "@example.com")
	if len(candidate) > 30 {
		t.Errorf("candidate length = %d, exceeds the 30-char username cap", len(candidate))
	}
}

func TestFromEmail_ConsecutiveCandidatesDiffer(t *testing.T) {
	g := New()

	// Random suffixes make a retry loop terminate; 20 draws colliding
	// entirely would mean the suffix isn't random.
	seen := map[string]bool{}
	for range 20 {
		seen[g.FromEmail("popular@example.com")] = true
	}
	if len(seen) < 2 {
		t.Error("FromEmail() returned the same candidate 20 times")
	}
}
