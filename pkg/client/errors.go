package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusError is returned for any non-2xx response. Detail carries the API's
// "detail" message when the body has one.
type StatusError struct {
	Code   int
	Body   []byte
	Detail string
}

func newStatusError(code int, body []byte) *StatusError {
	e := &StatusError{Code: code, Body: body}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			e.Detail = s
		} else {
			e.Detail = string(payload.Detail)
		}
	}
	return e
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("brightsky: %d %s: %s", e.Code, http.StatusText(e.Code), e.Detail)
	}
	return fmt.Sprintf("brightsky: %d %s", e.Code, http.StatusText(e.Code))
}
