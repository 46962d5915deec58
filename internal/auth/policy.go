package auth

import (
	"unicode"

	"github.com/BroDamaris/Web-DesaPulosari/internal/apperror"
)

// ValidatePassword applies the site's password acceptance policy:
// minimum 8 characters, at least one uppercase letter, at least one digit,
// and the confirmation must match exactly.
//
// The rules run in this order and short-circuit on the first violation, so
// callers can rely on no hashing (and no database write) having happened
// when an error comes back. Messages are the Indonesian strings the admin
// front-end displays verbatim.
func ValidatePassword(password, confirm string) error {
	if len(password) < 8 {
		return apperror.ValidationFailed("password", "Password minimal 8 karakter")
	}
	if !containsUpper(password) {
		return apperror.ValidationFailed("password", "Password harus mengandung minimal satu huruf kapital")
	}
	if !containsDigit(password) {
		return apperror.ValidationFailed("password", "Password harus mengandung minimal satu angka")
	}
	if password != confirm {
		return apperror.ValidationFailed("confPassword", "Password dan confirm password tidak cocok")
	}
	return nil
}

func containsUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
