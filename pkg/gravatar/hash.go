package gravatar

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Hash returns the lowercase hex MD5 of the normalized email, the identifier
// Gravatar keys every account by.
func Hash(email string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(NormalizeEmail(email))))
}
