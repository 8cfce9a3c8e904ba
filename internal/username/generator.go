// Package username derives candidate usernames for federated sign-ups
// that arrive without one.
package username

import (
	"math/rand/v2"
	"strings"
)

const (
	randomDigits = 3
	maxSeedLen   = 27 // leaves room for the digits within the 30-char cap
)

// Generator produces username candidates from an email seed.
//
// A candidate is not guaranteed unique — the caller is expected to
// check the store and call FromEmail again until a free name comes
// back. The random suffix makes consecutive candidates differ, so the
// retry loop terminates quickly even for popular local parts.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// FromEmail builds a candidate from the address's local part plus a
// short random digit suffix. Characters outside the username charset
// are dropped; an unusable local part falls back to "user".
func (g *Generator) FromEmail(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.' || r == '_' {
			b.WriteRune(r)
		}
		if b.Len() >= maxSeedLen {
			break
		}
	}

	seed := b.String()
	if len(seed) < 3 {
		seed = "user"
	}

	digits := make([]byte, randomDigits)
	for i := range digits {
		digits[i] = byte('0' + rand.IntN(10))
	}

	return seed + string(digits)
}
