// Package contact implements the contact form: the three draft fields, the
// submission lifecycle and the hand-off to an email relay.
package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Field names one of the form inputs. The values match the HTML input names.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the inputs in the order they are rendered.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// ErrMissingField is returned by Validate when a required input is empty.
var ErrMissingField = errors.New("contact: required field is empty")

// Form is the contact draft.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// With returns a copy of the form with one field replaced. Unknown fields
// leave the form as it was.
func (f Form) With(field Field, value string) Form {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	}
	return f
}

// Get returns the value of one field.
func (f Form) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldMessage:
		return f.Message
	}
	return ""
}

// IsZero reports whether every field is empty.
func (f Form) IsZero() bool {
	return f == Form{}
}

// Validate checks that all three fields carry text.
func (f Form) Validate() error {
	var missing []string
	for _, field := range Fields {
		if strings.TrimSpace(f.Get(field)) == "" {
			missing = append(missing, string(field))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// Normalized trims surrounding whitespace from every field. The text is
// otherwise relayed exactly as typed; relays treat params as plain text.
func (f Form) Normalized() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}
