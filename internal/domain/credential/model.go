package credential

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"regexp"
	"time"
)

// AccessCode is a shared-secret credential mapping a 6-digit code to the
// identity it signs in as. Only the hash of the code is stored, so rotating a
// code is a data change rather than a redeploy.
type AccessCode struct {
	ID        string
	CodeHash  string
	Email     string
	Name      string
	Role      string
	IssuedAt  time.Time
	RotatedAt *time.Time
}

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

func IsWellFormedCode(code string) bool {
	return codePattern.MatchString(code)
}

// HashCode derives the stored digest for an access code. The code space is
// tiny, so the salt keeps identical codes from sharing a digest across
// competitions.
func HashCode(code, salt string) string {
	sum := sha256.Sum256([]byte(salt + ":" + code))
	return hex.EncodeToString(sum[:])
}

func (c AccessCode) Matches(code, salt string) bool {
	candidate := HashCode(code, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(c.CodeHash)) == 1
}
