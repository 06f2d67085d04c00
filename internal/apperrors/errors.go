package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrDayLocked indicates the posting day is closed by an active day lock.
// Surfaced to the caller as user-actionable; never retried automatically.
var ErrDayLocked = errors.New("accounting day is locked")

// ErrNotLocked indicates an unlock was requested for a day that is not locked.
var ErrNotLocked = errors.New("accounting day is not locked")

// ErrAlreadyCorrected indicates the payment entry already has its one allowed correction.
var ErrAlreadyCorrected = errors.New("payment entry has already been corrected")
