package exceptions

import (
	"fmt"
	"runtime"
)

// Machine readable error kinds. Callers branch on Kind instead of comparing
// client messages.
const (
	KindNotFound     = "not_found"
	KindForbidden    = "forbidden"
	KindInvalidState = "invalid_state"
	KindConflict     = "conflict"
	KindValidation   = "validation"
	KindExhausted    = "exhausted"
	KindUnauthorized = "unauthorized"
	KindInternal     = "internal"
)

type CustomError struct {
	StatusCode    int      `json:"status_code"`
	Kind          string   `json:"kind"`
	Success       bool     `json:"success"`
	ClientMessage string   `json:"message"`
	DevMessage    string   `json:"-"`
	Location      Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func WrapWithoutError(statusCode int, kind, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)
	return &CustomError{
		StatusCode:    statusCode,
		Kind:          kind,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      location,
	}
}

func WrapWithError(err error, statusCode int, kind, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)
	devMessageWithCause := devMessage
	if err != nil {
		devMessageWithCause = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		Kind:          kind,
		ClientMessage: clientMessage,
		DevMessage:    devMessageWithCause,
		Location:      location,
	}
}

func BuildNewCustomError(err error, statusCode int, kind, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)
	devMessageWithCause := devMessage
	if err != nil {
		devMessageWithCause = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		Kind:          kind,
		ClientMessage: clientMessage,
		DevMessage:    devMessageWithCause,
		Location:      location,
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         "unknown",
			Line:         0,
			FunctionName: "unknown",
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
