package utils

import "net/mail"

// IsValidEmail reports whether s is a plain, well-formed email address.
// Display-name forms like "Name <a@b.c>" are rejected.
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
