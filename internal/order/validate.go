package order

import "regexp"

// phoneRe accepts an optional leading +, a country digit of 7 or 8, and
// exactly ten further digits. Separators and extensions are rejected; the
// accepted string is stored as submitted, without normalization.
var phoneRe = regexp.MustCompile(`^\+?[78]\d{10}$`)

// ValidatePhone reports whether text is an acceptable phone number.
func ValidatePhone(text string) bool {
	return phoneRe.MatchString(text)
}
