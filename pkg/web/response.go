// Package web defines common components for a web application.
package web

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Response is the success envelope shared by all APIs.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// ErrorResponse is the error envelope shared by all APIs.
type ErrorResponse struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	RootCause  string    `json:"rootCause"`
	Timestamp  time.Time `json:"timestamp"`
}

// Success wraps data into the success envelope.
func Success(status int, message string, data any) Response {
	return Response{
		StatusCode: status,
		Message:    message,
		Data:       data,
	}
}

// Error wraps err into the error envelope stamped with the current UTC time.
func Error(status int, err error, rootCause string) ErrorResponse {
	return ErrorResponse{
		StatusCode: status,
		Message:    err.Error(),
		RootCause:  rootCause,
		Timestamp:  time.Now().UTC(),
	}
}

// GetErrorMsg returns human readable message for the failed validation rule.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		return " must be at least " + fe.Param()
	case "max":
		return " must be at most " + fe.Param() + " characters long"
	case "amount":
		return " must be greater than zero"
	}

	return " is invalid"
}
