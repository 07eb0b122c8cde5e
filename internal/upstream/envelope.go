// internal/upstream/envelope.go
package upstream

import "encoding/json"

// envelope is the upstream API's response shape. A few endpoints return their
// payload under endpoint-specific keys (complaints, leave, ...) instead of
// data; normalize folds those variants into the canonical Result before
// anything typed sees them.
type envelope struct {
	Success                bool            `json:"success"`
	Message                string          `json:"message"`
	Error                  string          `json:"error"`
	Data                   json.RawMessage `json:"data"`
	Token                  string          `json:"token"`
	RequiresPasswordChange bool            `json:"requiresPasswordChange"`
	ForcePasswordChange    bool            `json:"forcePasswordChange"`
	Complaints             json.RawMessage `json:"complaints"`
	Complaint              json.RawMessage `json:"complaint"`
	Leaves                 json.RawMessage `json:"leaves"`
	Leave                  json.RawMessage `json:"leave"`
	User                   json.RawMessage `json:"user"`
}

// Result is the single canonical success shape handed to consumers.
type Result struct {
	Message                string
	Data                   json.RawMessage
	Token                  string
	RequiresPasswordChange bool
	User                   json.RawMessage
}

func (e *envelope) normalize() *Result {
	data := e.Data
	for _, variant := range []json.RawMessage{e.Complaints, e.Complaint, e.Leaves, e.Leave} {
		if len(variant) > 0 && string(variant) != "null" {
			data = variant
			break
		}
	}

	return &Result{
		Message:                e.Message,
		Data:                   data,
		Token:                  e.Token,
		RequiresPasswordChange: e.RequiresPasswordChange || e.ForcePasswordChange,
		User:                   e.User,
	}
}

// failureMessage picks the most specific message the upstream provided for a
// failed call, falling back to the stable per-status default.
func (e *envelope) failureMessage(status int) string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return defaultMessage(status)
}
