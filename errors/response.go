package errors

import "fmt"

// Response is the error body returned by the API.
type Response struct {
	Error       error
	Description string
	StatusCode  int
}

// resolveOrder lists the known errors most specific first. NewResponse reports
// the first one an error wraps.
var resolveOrder = []error{
	ErrFieldNotVisible,
	ErrValueNotAllowed,
	ErrFieldNotRemovable,
	ErrDuplicateRestriction,
	ErrVersionConflict,
	ErrImmutable,
	ErrInvalidCredentials,
	ErrUnauthenticated,
	ErrUnauthorized,
	ErrNotFound,
	ErrConflict,
	ErrInvalidRequest,
	ErrServerError,
}

// DetailError attaches a client safe description to a known error.
type DetailError struct {
	Err    error
	Detail string
}

func (e *DetailError) Error() string { return e.Err.Error() + ": " + e.Detail }

func (e *DetailError) Unwrap() error { return e.Err }

// InvalidRequestf returns ErrInvalidRequest carrying a description that is
// shown to the client in place of the generic one.
func InvalidRequestf(format string, args ...any) error {
	return &DetailError{Err: ErrInvalidRequest, Detail: fmt.Sprintf(format, args...)}
}

// NewResponse resolves err to the first known error it wraps and builds the
// client facing response. Unknown errors become ErrServerError.
func NewResponse(err error) *Response {
	known := ErrServerError
	for _, e := range resolveOrder {
		if Is(err, e) {
			known = e
			break
		}
	}
	description := Descriptions[known]
	if pub, ok := Public[known]; ok {
		known = pub
		description = Descriptions[known]
	} else {
		var de *DetailError
		if As(err, &de) && de.Err == known && de.Detail != "" {
			description = de.Detail
		}
	}
	return &Response{
		Error:       known,
		Description: description,
		StatusCode:  StatusCodes[known],
	}
}
