package handler

import (
	"time"

	"github.com/plainsight/plainsight-go/internal/core/domain"
)

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// RevealResponse is the data of POST /v1/reveal.
type RevealResponse struct {
	Message string `json:"message"`
}

// InspectResponse is the data of POST /v1/inspect.
type InspectResponse = domain.Inspection

// HealthResponse is the data of GET /health and GET /ready.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// Multipart form fields.
const (
	FieldImage   = "image"
	FieldMessage = "message"
	FieldPasskey = "passkey"
	FieldFormat  = "format"
)

// HeaderCapacityBytes reports the carrier capacity on POST /v1/conceal.
const HeaderCapacityBytes = "X-Plainsight-Capacity-Bytes"
