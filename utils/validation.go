// utils/validation.go
package utils

import "strings"

// ValidatePhone reports whether the value is a 10-digit mobile number,
// the format the credit account and mess columns store. Separators and
// a +91 country prefix are tolerated and stripped before checking.
func ValidatePhone(phone string) bool {
	var digits strings.Builder
	for _, r := range strings.TrimPrefix(strings.TrimSpace(phone), "+91") {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
			// separators are dropped
		default:
			return false
		}
	}
	cleaned := digits.String()
	return len(cleaned) == 10 && cleaned[0] != '0'
}
