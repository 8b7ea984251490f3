package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrForbidden indicates that the acting user may not perform the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidState indicates that a workflow action is not legal from the document's current status.
var ErrInvalidState = errors.New("action not allowed in current status")

// ErrNoTransition indicates that advancing would not change the document's status.
var ErrNoTransition = errors.New("no transition available from current status")

// ErrInvalidTarget indicates that the requested target user cannot receive the document.
var ErrInvalidTarget = errors.New("invalid target user")

// ErrAllocationExhausted indicates that no free archive number was found within the attempt bound.
var ErrAllocationExhausted = errors.New("archive number allocation exhausted")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected infrastructure failure; details stay in the logs.
var ErrInternal = errors.New("internal error")
