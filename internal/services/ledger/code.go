package ledger

import "math/rand"

const (
	referralAlphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referralCodeLength = 8

	codeGenAttempts = 5
)

// GenerateReferralCode draws an 8 symbol code from the 62 letter alphabet.
// Uniqueness is enforced by the accounts table, collisions just trigger a
// redraw.
func GenerateReferralCode() string {
	code := make([]byte, referralCodeLength)
	for i := range code {
		code[i] = referralAlphabet[rand.Intn(len(referralAlphabet))]
	}

	return string(code)
}
