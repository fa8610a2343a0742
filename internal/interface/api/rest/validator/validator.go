package validator

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"audio-vault-api/internal/interface/api/rest/dto/user"
)

const maxNameLen = 128

func ValidatePage(page string) (int, error) {
	p := 1
	if page != "" {
		p, err := strconv.Atoi(page)
		if err != nil || p < 1 {
			return p, errors.New("invalid page")
		}
		return p, nil
	}

	return p, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ValidateUserUpdate checks the self-service profile update. Both fields are
// optional but whatever is present must be well formed.
func ValidateUserUpdate(r user.Request) map[string]string {
	errs := make(map[string]string)

	email := strings.ToLower(strings.TrimSpace(r.Email))
	name := strings.TrimSpace(r.Name)

	if email == "" && name == "" {
		errs["body"] = "at least one of email, name is required"
	}

	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs["email"] = "invalid email format"
		}
	}

	if name != "" {
		if l := utf8.RuneCountInString(name); l > maxNameLen {
			errs["name"] = "name is too long"
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}
