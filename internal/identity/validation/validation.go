// Package validation checks and normalizes account fields before they
// enter a request payload. Every check is local; nothing here touches
// the network.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/domain"
)

const (
	// MaxUIDLength is the upstream limit on caller-chosen uids.
	MaxUIDLength = 128
	// MinPasswordLength is the upstream minimum for raw passwords.
	MinPasswordLength = 6
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+[0-9]+$`)
)

// UID checks a caller-supplied uid. When required is false an empty
// uid passes through as absent.
func UID(uid string, required bool) error {
	if uid == "" {
		if required {
			return &domain.InvalidArgumentError{Field: "uid", Reason: "uid is required"}
		}
		return nil
	}
	if len(uid) > MaxUIDLength {
		return &domain.InvalidArgumentError{
			Field:  "uid",
			Reason: fmt.Sprintf("uid must be at most %d characters", MaxUIDLength),
		}
	}
	return nil
}

// Email checks the basic shape of an email address.
func Email(email string, required bool) error {
	if email == "" {
		if required {
			return &domain.InvalidArgumentError{Field: "email", Reason: "email is required"}
		}
		return nil
	}
	if !emailPattern.MatchString(email) {
		return &domain.InvalidArgumentError{Field: "email", Reason: "malformed email address"}
	}
	return nil
}

// PhoneNumber checks the upstream phone format: a leading + followed
// by digits only.
func PhoneNumber(phone string, required bool) error {
	if phone == "" {
		if required {
			return &domain.InvalidArgumentError{Field: "phone_number", Reason: "phone number is required"}
		}
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return &domain.InvalidArgumentError{Field: "phone_number", Reason: "phone number must be a + followed by digits"}
	}
	return nil
}

// Password checks the upstream minimum length for raw passwords.
func Password(password string) error {
	if len(password) < MinPasswordLength {
		return &domain.InvalidArgumentError{
			Field:  "password",
			Reason: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// PhotoURL checks that a supplied photo URL is non-empty and parses as
// an absolute URL.
func PhotoURL(photoURL string) error {
	if photoURL == "" {
		return &domain.InvalidArgumentError{Field: "photo_url", Reason: "photo URL must not be empty"}
	}
	u, err := url.ParseRequestURI(photoURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &domain.InvalidArgumentError{Field: "photo_url", Reason: "malformed photo URL"}
	}
	return nil
}

// DisplayName checks that a supplied display name is non-empty.
func DisplayName(name string) error {
	if name == "" {
		return &domain.InvalidArgumentError{Field: "display_name", Reason: "display name must not be empty"}
	}
	return nil
}

// Bool coerces a loosely typed flag into a strict boolean. A nil input
// stays absent (nil result, no error); it is never coerced to false.
// Strings go through strconv.ParseBool, numbers compare against zero.
func Bool(field string, v interface{}) (*bool, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return &t, nil
	case string:
		parsed, err := strconv.ParseBool(t)
		if err != nil {
			return nil, &domain.InvalidArgumentError{Field: field, Reason: fmt.Sprintf("%q is not a boolean", t)}
		}
		return &parsed, nil
	case float64:
		b := t != 0
		return &b, nil
	case int:
		b := t != 0
		return &b, nil
	case int64:
		b := t != 0
		return &b, nil
	}
	return nil, &domain.InvalidArgumentError{Field: field, Reason: fmt.Sprintf("%v is not a boolean", v)}
}
