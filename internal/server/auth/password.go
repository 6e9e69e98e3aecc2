package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes plaintext passwords with bcrypt. Each call salts
// independently, so the same plaintext never produces the same stored hash.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher constructs a hasher with the given bcrypt cost.
// Costs below bcrypt.MinCost fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check reports whether plaintext matches hash. Malformed hashes compare
// as false, never as an error; the comparison is constant-time inside bcrypt.
func (h *PasswordHasher) Check(plaintext string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// DummyHash is a valid bcrypt hash of no real credential. Login flows run a
// comparison against it when the account does not exist, so that unknown
// emails and wrong passwords take similar time.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
