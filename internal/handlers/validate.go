package handlers

import "regexp"

const minPasswordLen = 4

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// validateCredentials applies the registration rules shared by both roles and
// returns a user-facing message when a rule fails.
func validateCredentials(email, password string) string {
	if !emailRegex.MatchString(email) {
		return "please enter a valid email"
	}
	if len(password) < minPasswordLen {
		return "password must be at least 4 characters"
	}
	return ""
}
