package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	PromoCodeLength  = 8
	SellerCodeLength = 4

	// Collision retries are bounded so adversarial code density cannot spin
	// the mint forever.
	MaxCodeMintAttempts = 10
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	return hasLower && hasUpper && hasNumber
}

// NormalizePhone strips formatting from a phone number and keeps the last 10
// digits, dropping any country-code prefix. "+91 98765-43210" → "9876543210".
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) > 10 {
		s = s[len(s)-10:]
	}
	return s
}

// RandomCode mints an n-character uppercase code from a confusion-free
// alphabet.
func RandomCode(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to draw random index: %w", err)
		}
		b.WriteByte(codeAlphabet[idx.Int64()])
	}
	return b.String(), nil
}

// UpgradeReferralCode derives a seller referral code for a customer upgrading
// to seller: brand (or username) initials plus a stable id fragment.
func UpgradeReferralCode(brandName, username string, id uuid.UUID) string {
	source := brandName
	if strings.TrimSpace(source) == "" {
		source = username
	}

	var initials strings.Builder
	for _, word := range strings.Fields(source) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				initials.WriteRune(unicode.ToUpper(r))
				break
			}
		}
	}

	idHex := strings.ReplaceAll(id.String(), "-", "")
	return initials.String() + strings.ToUpper(idHex[:6])
}
