package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenTTL is how long a password-reset token stays redeemable.
const ResetTokenTTL = time.Hour

// NewResetToken returns a 32-byte random token, hex-encoded.
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
