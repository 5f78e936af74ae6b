package utils

import "unicode"

// IsValidUsername accepts 3-32 letters, digits, dots, dashes or underscores.
func IsValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 32 {
		return false
	}
	for _, char := range username {
		switch {
		case unicode.IsLetter(char) || unicode.IsDigit(char):
		case char == '.' || char == '-' || char == '_':
		default:
			return false
		}
	}
	return true
}

// IsValidPassword enforces the minimum credential length.
func IsValidPassword(password string) bool {
	return len(password) >= 4
}
