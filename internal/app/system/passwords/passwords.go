// Package passwords hashes and verifies admin passwords with bcrypt.
//
// Callers must never log or persist plaintext passwords. The bcrypt hash
// string embeds its cost parameter, so hashes created under an older cost
// remain verifiable after the configured cost changes.
package passwords

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is used when no cost is configured. Cost 12 is a reasonable
// default for interactive login.
const DefaultCost = 12

// DummyHash is a valid bcrypt hash of an unguessable string. Verification
// against an unknown email compares the supplied password against this hash
// so the unknown-email and wrong-password paths both cost one bcrypt compare.
const DummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Hasher hashes and verifies passwords at a fixed cost.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher with the given bcrypt cost, clamped to the
// valid range. A non-positive cost selects DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash produces a bcrypt hash of password suitable for storage.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifies password against the stored hash in constant time.
// Returns nil on match.
func (h *Hasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
