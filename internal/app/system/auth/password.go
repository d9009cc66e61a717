package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (> 72 bytes).
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// PasswordHasher hashes and verifies passwords with bcrypt. The salt and
// cost travel inside the hash string.
type PasswordHasher struct {
	cost  int
	decoy []byte
}

// NewPasswordHasher returns a hasher using cost, clamped to bcrypt's range.
// Zero selects bcrypt.DefaultCost. The decoy hash used by VerifyDecoy is
// built here so the first unknown-email login costs the same as later ones.
func NewPasswordHasher(cost int) *PasswordHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	decoy, err := bcrypt.GenerateFromPassword([]byte("decoy-password"), cost)
	if err != nil {
		// The cost is clamped above, so only an RNG failure lands here.
		panic("auth: build decoy hash: " + err.Error())
	}
	return &PasswordHasher{cost: cost, decoy: decoy}
}

// Hash returns the bcrypt encoding of plain.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches hash. A malformed hash is simply a
// mismatch.
func (h *PasswordHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// VerifyDecoy burns the same bcrypt work as Verify against a throwaway hash.
// Login calls it for unknown emails so both failure paths take equal time.
func (h *PasswordHasher) VerifyDecoy(plain string) {
	_ = bcrypt.CompareHashAndPassword(h.decoy, []byte(plain))
}
