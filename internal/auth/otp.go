package auth

import (
	"crypto/rand"
	"math/big"

	"github.com/rotisserie/eris"
)

// GenerateOTP produces a 6-digit one-time code. Codes come from
// crypto/rand, never from a seeded stream.
func GenerateOTP() (string, error) {
	// Uniform in [100000, 999999].
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", eris.Wrap(err, "auth: generate otp")
	}
	digits := n.Int64() + 100000
	return formatOTP(digits), nil
}

func formatOTP(n int64) string {
	buf := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf)
}
