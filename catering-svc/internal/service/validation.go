package service

import (
	"net/mail"
	"strings"
	"unicode"
)

const minPhoneDigits = 10

type fieldErrors map[string]string

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = field + " is required"
	}
}

func (f fieldErrors) email(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		f[field] = field + " is required"
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		f[field] = "invalid email address"
	}
}

func (f fieldErrors) phone(field, value string) {
	digits := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < minPhoneDigits {
		f[field] = "phone number must contain at least 10 digits"
	}
}

func (f fieldErrors) check(ok bool, field, message string) {
	if !ok {
		f[field] = message
	}
}

// result returns nil when no field failed.
func (f fieldErrors) result(message string) error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Message: message, Fields: f}
}
