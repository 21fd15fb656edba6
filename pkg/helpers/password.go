package helpers

import (
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for stored credentials
const BcryptCost = 12

// MaxPasswordBytes is the longest input bcrypt accepts
const MaxPasswordBytes = 72

const (
	StrengthWeak   = "weak"
	StrengthFair   = "fair"
	StrengthGood   = "good"
	StrengthStrong = "strong"

	// MinAcceptedPasswordScore is the lowest score registration accepts
	MinAcceptedPasswordScore = 2
)

// PasswordStrength is the result of scoring a candidate password
type PasswordStrength struct {
	Score    int      `json:"score"`
	Strength string   `json:"strength"`
	Feedback []string `json:"feedback"`
}

type passwordRule struct {
	ok       func(string) bool
	feedback string
}

var passwordRules = []passwordRule{
	{func(p string) bool { return utf16Len(p) >= 8 }, "Password should be at least 8 characters long"},
	{func(p string) bool { return containsRune(p, isASCIILower) }, "Include lowercase letters"},
	{func(p string) bool { return containsRune(p, isASCIIUpper) }, "Include uppercase letters"},
	{func(p string) bool { return containsRune(p, isASCIIDigit) }, "Include numbers"},
	{func(p string) bool { return containsRune(p, isSpecial) }, "Include special characters"},
}

// CheckPasswordStrength scores a password against every rule, one point each.
// Feedback lists the unmet rules in rule order.
func CheckPasswordStrength(password string) PasswordStrength {
	res := PasswordStrength{Feedback: []string{}}
	for _, r := range passwordRules {
		if r.ok(password) {
			res.Score++
		} else {
			res.Feedback = append(res.Feedback, r.feedback)
		}
	}
	switch {
	case res.Score >= 5:
		res.Strength = StrengthStrong
	case res.Score >= 3:
		res.Strength = StrengthGood
	case res.Score >= 2:
		res.Strength = StrengthFair
	default:
		res.Strength = StrengthWeak
	}
	return res
}

// Acceptable reports whether registration may use the scored password
func (s PasswordStrength) Acceptable() bool {
	return s.Score >= MinAcceptedPasswordScore
}

// utf16Len counts UTF-16 code units, so characters outside the BMP count twice,
// matching how the dashboard measures length in the browser.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

func containsRune(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if pred(r) {
			return true
		}
	}
	return false
}

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// isSpecial matches anything outside [A-Za-z0-9], including non-ASCII letters
func isSpecial(r rune) bool {
	return !isASCIILower(r) && !isASCIIUpper(r) && !isASCIIDigit(r)
}

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	return HashPasswordWithCost(plain, BcryptCost)
}

// HashPasswordWithCost is HashPassword with an explicit work factor
func HashPasswordWithCost(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
