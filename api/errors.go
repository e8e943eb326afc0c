package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"library-client/gateway"
)

// FieldError is one inline validation message, tied to the input it belongs
// to. Field errors are surfaced next to the form field and are never sent
// to the network.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors is a validation error list, either produced client-side or
// decoded from a register rejection.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// ByField returns the message for one field, or "".
func (e FieldErrors) ByField(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// fieldErrorsFrom decodes a backend field-error list out of a 4xx response
// body. Returns nil when the body is not such a list.
func fieldErrorsFrom(err error) FieldErrors {
	var se *gateway.StatusError
	if !errors.As(err, &se) || se.Code < 400 || se.Code > 499 {
		return nil
	}
	var fes FieldErrors
	if json.Unmarshal(se.Body, &fes) != nil || len(fes) == 0 {
		return nil
	}
	for _, fe := range fes {
		if fe.Field == "" {
			return nil
		}
	}
	return fes
}
