// Package passx implements the master-password policy and a small
// deterministic strength analyzer.
package passx

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length bounds for a valid master password (closed interval).
const (
	MinLength = 7
	MaxLength = 16
)

var (
	ErrTooShort      = errors.New("password must be at least 7 characters")
	ErrTooLong       = errors.New("password must be at most 16 characters")
	ErrMissingLetter = errors.New("password must contain at least one letter")
	ErrMissingDigit  = errors.New("password must contain at least one digit")
)

// Strength is the result of analyzing a candidate password.
type Strength struct {
	Score    int      // 0 (very weak) .. 4 (very strong)
	Label    string   // human-readable band for Score
	Feedback []string // at most three improvement suggestions
	IsValid  bool     // whether the password passes Validate
}

var labels = [5]string{"Very weak", "Weak", "Fair", "Strong", "Very strong"}

// Substrings that mark a password as following a well-known pattern.
// "lösenord" is Swedish for password; the tool's users type both.
var commonPatterns = []string{"12345", "qwerty", "password", "lösenord"}

// Validate checks the password against the policy: length within
// [MinLength, MaxLength], at least one letter and at least one digit.
func Validate(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinLength {
		return ErrTooShort
	}
	if n > MaxLength {
		return ErrTooLong
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return ErrMissingLetter
	}
	if !hasDigit {
		return ErrMissingDigit
	}
	return nil
}

// AnalyzeStrength scores a password on a 0–4 scale and suggests
// improvements. It is pure: the same input always yields the same result.
func AnalyzeStrength(password string) Strength {
	err := Validate(password)

	score := 0
	var feedback []string
	if err != nil {
		feedback = append(feedback, err.Error())
	}

	switch n := utf8.RuneCountInString(password); {
	case n >= 12:
		score += 2
	case n >= 9:
		score++
	default:
		feedback = append(feedback, "longer passwords are stronger")
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	variety := 0
	for _, present := range []bool{hasLower, hasUpper, hasDigit, hasSymbol} {
		if present {
			variety++
		}
	}
	switch {
	case variety >= 4:
		score += 2
	case variety == 3:
		score++
	}

	if hasLower && !hasUpper {
		feedback = append(feedback, "add uppercase letters")
	}
	if !hasSymbol {
		feedback = append(feedback, "add symbols")
	}

	if hasCommonPattern(strings.ToLower(password)) {
		if score > 0 {
			score--
		}
		feedback = append(feedback, "avoid common patterns")
	}

	if score > 4 {
		score = 4
	}
	if len(feedback) > 3 {
		feedback = feedback[:3]
	}

	return Strength{
		Score:    score,
		Label:    labels[score],
		Feedback: feedback,
		IsValid:  err == nil,
	}
}

func hasCommonPattern(lower string) bool {
	for _, p := range commonPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}

	// Any character repeated three or more times in a row.
	var prev rune
	run := 0
	for _, r := range lower {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= 3 {
			return true
		}
	}
	return false
}
