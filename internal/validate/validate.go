// Package validate holds the contact validation rules shared by the HTTP
// service and the client orchestrator. The server is the source of truth;
// the client runs the same functions as a pre-submit fast path, so the two
// sides cannot diverge.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/contactdesk/backend/internal/model"
)

// MaxMessageLength is the longest accepted message, in runes.
const MaxMessageLength = 200

// PhoneLength is the exact required phone length.
const PhoneLength = 10

// emailPattern accepts anything shaped like local@domain.tld with no
// whitespace in any part.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Contact checks a raw candidate and returns a field -> message map.
// An empty map means the candidate is valid. Pure: the input is not
// modified and no trimming is written back.
func Contact(in model.ContactInput) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	message := strings.TrimSpace(in.Message)

	if name == "" {
		errs["name"] = "Name is required"
	}

	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Invalid email format"
	}

	if phone == "" {
		errs["phone"] = "Phone is required"
	} else if utf8.RuneCountInString(phone) != PhoneLength {
		errs["phone"] = "Phone must be exactly 10 characters"
	}

	if utf8.RuneCountInString(message) > MaxMessageLength {
		errs["message"] = "Message must be 200 characters or less"
	}

	return errs
}

// Normalize returns the trimmed form of a candidate with the email
// lower-cased, which is the shape the store persists and the shape the
// uniqueness invariants are defined over.
func Normalize(in model.ContactInput) model.ContactInput {
	return model.ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   strings.TrimSpace(in.Phone),
		Message: strings.TrimSpace(in.Message),
	}
}
