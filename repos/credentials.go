package repos

import "golang.org/x/crypto/bcrypt"

// Credentials abstracts how passwords are stored and checked, so a hashing
// scheme can replace plaintext without touching the user repository.
type Credentials interface {
	Hash(plain string) (string, error)
	Verify(stored, plain string) bool
}

// PlainCredentials stores passwords as-is. This mirrors the legacy deployment
// and is the default scheme.
type PlainCredentials struct{}

func (PlainCredentials) Hash(plain string) (string, error) { return plain, nil }
func (PlainCredentials) Verify(stored, plain string) bool  { return stored == plain }

// BcryptCredentials hashes passwords with bcrypt. Selected with
// auth.scheme=bcrypt; note the seeded admin can then only log in if the seed
// ran under the same scheme.
type BcryptCredentials struct {
	Cost int
}

func (c BcryptCredentials) Hash(plain string) (string, error) {
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(h), err
}

func (c BcryptCredentials) Verify(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
