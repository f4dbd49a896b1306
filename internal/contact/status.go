package contact

import "fmt"

// Status is the coarse submission state shown to the sender.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

var statusNames = map[Status]string{
	StatusIdle:       "idle",
	StatusSubmitting: "submitting",
	StatusSuccess:    "success",
	StatusError:      "error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText lets Status appear by name in JSON and logs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether the status ends a submission attempt.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusError
}

// User-facing status messages.
const (
	SuccessMessage = "Message sent successfully! I'll get back to you soon."
	ErrorMessage   = "Oops! Something went wrong. Please try again or email me directly."
)

// Message returns the text shown for a terminal status, or "".
func (s Status) Message() string {
	switch s {
	case StatusSuccess:
		return SuccessMessage
	case StatusError:
		return ErrorMessage
	}
	return ""
}
