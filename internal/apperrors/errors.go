package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation conflicts with the current state of the resource,
// e.g. deciding an approval step that has already been processed.
var ErrConflict = errors.New("conflict with current resource state")

// ErrRefreshTokenExpired indicates the stored refresh token has expired.
var ErrRefreshTokenExpired = errors.New("refresh token expired")
