package utils

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNotAuthorized       = errors.New("not authorized to access this resource")
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateIdentity   = errors.New("email or username already in use")
	ErrSessionExpired      = errors.New("session expired, please log in again")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrInvalidPage         = errors.New("invalid page parameter")
	ErrInvalidPageSize     = errors.New("invalid page size parameter")
	ErrDatabaseError       = errors.New("database error")
)
