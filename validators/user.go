package validators

import (
	"regexp"
	"strings"
)

var (
	usernamePattern   = regexp.MustCompile(`^[\w.@+-]+$`)
	reservedUsernames = []string{"admin", "root", "api", "me", "null", "undefined"}
)

// ValidateUsername applies the sign up rules for usernames.
func ValidateUsername(username string) FieldErrors {
	trimmed := strings.TrimSpace(username)

	switch {
	case trimmed == "":
		return Field("username", "This field is required.")
	case len(trimmed) > 150:
		return Field("username", "Ensure this field has no more than 150 characters.")
	case !usernamePattern.MatchString(trimmed):
		return Field("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	for _, reserved := range reservedUsernames {
		if strings.EqualFold(trimmed, reserved) {
			return Field("username", "This username is reserved and cannot be used.")
		}
	}

	return nil
}
