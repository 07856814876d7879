package dto

import "time"

// ErrorResponse is the JSON body returned for every failed API request.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid side"`
	ErrorDetails string    `json:"error,omitempty" example:"unknown side \"XYZ\" (want CPA or VDA)"`
	Timestamp    time.Time `json:"timestamp" example:"2025-01-02T10:00:00Z"`
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// Error implements the error interface so the response can travel through c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
