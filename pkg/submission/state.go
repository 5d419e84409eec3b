package submission

import "strings"

// State is the lifecycle position of a Machine.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Field names accepted by the contact form.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// FieldNames lists the form's fields in display order.
func FieldNames() []string {
	return []string{FieldName, FieldEmail, FieldMessage}
}

// IsField reports whether name is one of FieldNames.
func IsField(name string) bool {
	switch strings.TrimSpace(name) {
	case FieldName, FieldEmail, FieldMessage:
		return true
	default:
		return false
	}
}

// Values maps field names to the submitted text.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// ValidationError is one field-level problem reported by the collaborator.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Snapshot is a read-only copy of a Machine's state.
type Snapshot struct {
	State State `json:"state"`
	// Attempt identifies the most recent submission; empty while Idle.
	Attempt string            `json:"attempt,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
	// FormErrors holds collaborator messages not tied to a field.
	FormErrors []string `json:"formErrors,omitempty"`
	// General is set for failures without field detail, such as transport
	// errors, so callers render a generic notice.
	General bool  `json:"general,omitempty"`
	Err     error `json:"-"`
}

// ErrorsFor returns the messages attached to field.
func (s Snapshot) ErrorsFor(field string) []string {
	var out []string
	for _, verr := range s.Errors {
		if verr.Field == field {
			out = append(out, verr.Message)
		}
	}
	return out
}
