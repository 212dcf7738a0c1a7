package dto

import "strconv"

// Response is the envelope every endpoint answers with. Status mirrors the
// HTTP code except for "taken" (200) and empty-list (204) answers.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// NewResponse builds an envelope for the given status code.
func NewResponse(status int, message string, data any) Response {
	return Response{Status: strconv.Itoa(status), Message: message, Data: data}
}
