package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP returns a uniformly random 4-digit code in [1000, 9999],
// so the code never has a leading zero.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		// crypto/rand failing means the platform RNG is broken; there is
		// no safe fallback for a security code.
		panic(fmt.Sprintf("otp: rand.Int: %v", err))
	}
	return fmt.Sprintf("%d", n.Int64()+1000)
}
