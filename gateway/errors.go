package gateway

import (
	"bytes"
	"errors"
	"fmt"
)

// StatusError is a settled non-2xx response. The body is kept verbatim so
// views can surface the backend's message or decode a field-error list.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	msg := bytes.TrimSpace(e.Body)
	if len(msg) == 0 {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, msg)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
