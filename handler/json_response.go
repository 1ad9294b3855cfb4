package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quirkauto/advisorcopilot/pkg/binder"
	"github.com/quirkauto/advisorcopilot/pkg/validator"
)

// JSONResponse is the standard JSON response structure
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONMeta adds metadata to response
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Meta = meta
	}
}

// JSON wraps v in the data envelope. Errors passed here are rendered the
// same way JSONError renders them.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK}

	switch val := v.(type) {
	case JSONResponse:
		r.body = val
	case error:
		r.body.Error = errorToDetail(val, &r.status)
	default:
		r.body.Data = v
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err inside the error envelope with a status derived
// from its type.
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError}
	r.body.Error = errorToDetail(err, &r.status)

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StatusOf returns the HTTP status JSONError would use for err.
func StatusOf(err error) int {
	status := http.StatusInternalServerError
	errorToDetail(err, &status)
	return status
}

func errorToDetail(err error, status *int) *ErrorDetail {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		*status = http.StatusUnprocessableEntity
		detail := &ErrorDetail{
			Code:    "validation_error",
			Message: "Validation failed",
		}
		if len(ve) > 0 {
			detail.Details = make(map[string][]string, len(ve))
			for _, field := range ve.Fields() {
				detail.Details[field] = ve.Get(field)
			}
		}
		return detail
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		*status = httpErr.Code
		msg := httpErr.Message
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return &ErrorDetail{Code: httpErr.Key, Message: msg}
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		*status = http.StatusUnsupportedMediaType
		return &ErrorDetail{Code: ErrUnsupportedMediaType.Key, Message: err.Error()}
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseForm),
		errors.Is(err, binder.ErrFailedToParseQuery),
		errors.Is(err, binder.ErrFailedToParsePath):
		*status = http.StatusBadRequest
		return &ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	}

	*status = http.StatusInternalServerError
	return &ErrorDetail{
		Code:    "internal_error",
		Message: "An error occurred processing your request",
	}
}
