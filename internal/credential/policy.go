package credential

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Check returns every policy rule the password breaks. An empty result means
// the password is acceptable.
func (p Policy) Check(password string) []string {
	var reasons []string

	n := utf8.RuneCountInString(password)
	if n < p.MinLength {
		reasons = append(reasons, fmt.Sprintf("password must be at least %d characters", p.MinLength))
	}
	if p.MaxLength > 0 && n > p.MaxLength {
		reasons = append(reasons, fmt.Sprintf("password must be at most %d characters", p.MaxLength))
	}

	var hasDigit, hasLower, hasUpper, hasOther bool
	unique := make(map[rune]struct{}, n)
	for _, r := range password {
		unique[r] = struct{}{}
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r):
			hasOther = true
		}
	}

	if p.RequireDigit && !hasDigit {
		reasons = append(reasons, "password must contain a digit")
	}
	if p.RequireLower && !hasLower {
		reasons = append(reasons, "password must contain a lowercase letter")
	}
	if p.RequireUpper && !hasUpper {
		reasons = append(reasons, "password must contain an uppercase letter")
	}
	if p.RequireNonAlnum && !hasOther {
		reasons = append(reasons, "password must contain a non-alphanumeric character")
	}
	if len(unique) < p.MinUniqueChars {
		reasons = append(reasons, fmt.Sprintf("password must use at least %d different characters", p.MinUniqueChars))
	}

	return reasons
}
