package services

import (
	"fmt"

	"Encore/models"
)

// NotFoundError reports an unknown performer or song request id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// RejectedError reports a failed admission rule on submission.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// InvalidTransitionError reports a guarded operation attempted from a
// disallowed status.
type InvalidTransitionError struct {
	Op   string
	From models.RequestStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s request in %s status", e.Op, e.From)
}
