package errors

import "errors"

// New returns an error that formats as the given text.
var New = errors.New

// Is and As re-export the standard helpers so callers need a single import.
var (
	Is = errors.Is
	As = errors.As
)

// known errors
var (
	ErrInvalidRequest       = errors.New("invalid_request")
	ErrUnauthenticated      = errors.New("invalid_token")
	ErrUnauthorized         = errors.New("access_denied")
	ErrFieldNotVisible      = errors.New("field_not_visible")
	ErrValueNotAllowed      = errors.New("value_not_allowed")
	ErrFieldNotRemovable    = errors.New("field_not_removable")
	ErrDuplicateRestriction = errors.New("duplicate_restriction")
	ErrImmutable            = errors.New("immutable")
	ErrNotFound             = errors.New("not_found")
	ErrConflict             = errors.New("conflict")
	ErrVersionConflict      = errors.New("version_conflict")
	ErrInvalidCredentials   = errors.New("invalid_credentials")
	ErrServerError          = errors.New("server_error")
)

// Descriptions error description
var Descriptions = map[error]string{
	ErrInvalidRequest:       "The request is missing a required parameter or is otherwise malformed",
	ErrUnauthenticated:      "A valid bearer token is required",
	ErrUnauthorized:         "You do not have permission to perform this action",
	ErrFieldNotVisible:      "The requested resource was not found",
	ErrValueNotAllowed:      "You do not have permission to perform this action",
	ErrFieldNotRemovable:    "This field cannot be removed",
	ErrDuplicateRestriction: "A restriction already exists for this role and field",
	ErrImmutable:            "This record is protected and cannot be changed",
	ErrNotFound:             "The requested resource was not found",
	ErrConflict:             "The request conflicts with an existing record",
	ErrVersionConflict:      "The record was modified by another request",
	ErrInvalidCredentials:   "Invalid email or password",
	ErrServerError:          "The server encountered an unexpected condition",
}

// StatusCodes response error HTTP status code
var StatusCodes = map[error]int{
	ErrInvalidRequest:       400,
	ErrUnauthenticated:      401,
	ErrUnauthorized:         403,
	ErrFieldNotVisible:      404,
	ErrValueNotAllowed:      403,
	ErrFieldNotRemovable:    409,
	ErrDuplicateRestriction: 409,
	ErrImmutable:            409,
	ErrNotFound:             404,
	ErrConflict:             409,
	ErrVersionConflict:      409,
	ErrInvalidCredentials:   401,
	ErrServerError:          500,
}

// Public maps errors whose code must not reach clients to the code they are
// reported as. Hidden fields look missing and rejected values look like any
// other denial.
var Public = map[error]error{
	ErrFieldNotVisible: ErrNotFound,
	ErrValueNotAllowed: ErrUnauthorized,
}
