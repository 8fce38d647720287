package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword runs the plain password through bcrypt at the given
// cost.  The cost comes from BCRYPT_COST so test and production
// environments can tune the work factor independently.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt
// hash.  Any comparison failure, malformed hash included, reads as a
// mismatch.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
