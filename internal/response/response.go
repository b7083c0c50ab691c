package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketbridge/internal/apperror"
)

// Envelope is the uniform response body every endpoint returns.
type Envelope struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func write(w http.ResponseWriter, httpStatus int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	_ = json.NewEncoder(w).Encode(Envelope{
		Code:    httpStatus,
		Status:  http.StatusText(httpStatus),
		Message: message,
		Data:    data,
	})
}

func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, http.StatusText(http.StatusOK), data)
}

func Created(w http.ResponseWriter, data any) {
	write(w, http.StatusCreated, http.StatusText(http.StatusCreated), data)
}

// Fail writes the envelope with an explicit HTTP status.
func Fail(w http.ResponseWriter, httpStatus int, message string) {
	write(w, httpStatus, message, nil)
}

// Err maps a service error onto the envelope. apperror codes decide the HTTP
// status; anything else is a 500 with a generic message.
func Err(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperror.CodeNotFound:
			write(w, http.StatusNotFound, appErr.Message, nil)
		case apperror.CodeInvalidInput, apperror.CodeShippingAddressNotRegistered:
			write(w, http.StatusBadRequest, appErr.Message, nil)
		default:
			write(w, http.StatusInternalServerError, appErr.Message, nil)
		}
		return
	}

	write(w, http.StatusInternalServerError, "internal server error", nil)
}
