package apperrors

import "errors"

var ErrEmptyTitle = errors.New("title must not be empty")

var ErrUnknownRole = errors.New("processor role is not part of the approval chain")

var ErrInvalidStatus = errors.New("status must be APPROVED, REJECTED or CANCELED")

var ErrRequestNotFound = errors.New("approval request not found")

var ErrNoSteps = errors.New("approval request has no steps")

var ErrNoPendingStep = errors.New("no pending step for this approver")

var ErrNoApproverForRole = errors.New("no user holds the required approver role")

var ErrNoNextRole = errors.New("approval chain has no further role")

var ErrRequestCompleted = errors.New("approval request is already completed")

var ErrConcurrentModification = errors.New("approval request was modified concurrently")

var ErrAttachmentNotFound = errors.New("attachment not found")

var ErrNoAccess = errors.New("no access")

var ErrInvalidCredentials = errors.New("invalid email or password")
