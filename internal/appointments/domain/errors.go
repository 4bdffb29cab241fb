package domain

import (
	"fmt"
	"strings"

	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
)

var (
	ErrAppointmentNotFound = fmt.Errorf("appointment %w", sharedDomain.ErrNotFound)
	ErrCustomerNotFound    = fmt.Errorf("customer %w", sharedDomain.ErrNotFound)
	ErrDoctorNotFound      = fmt.Errorf("doctor %w", sharedDomain.ErrNotFound)

	ErrInvalidStatus = sharedDomain.NewError("invalid appointment status")
	ErrNotADoctor    = sharedDomain.NewError("user is not a doctor")

	// ErrEmptyQueue is returned by dispatch when nothing can be assigned.
	// Callers distinguish the two causes with errors.Is on the sub-kinds.
	ErrEmptyQueue            = sharedDomain.NewError("queue is empty")
	ErrQueueEmpty            = fmt.Errorf("%w: no checked-in appointments", ErrEmptyQueue)
	ErrNoMatchingAppointment = fmt.Errorf("%w: no checked-in appointment is eligible for this doctor", ErrEmptyQueue)

	ErrBlankSearch = fmt.Errorf("%w: search query must not be blank", sharedDomain.ErrInvalidInput)
)

// InvalidStatusError reports a transition attempted from the wrong status.
type InvalidStatusError struct {
	Current  Status
	Required []Status
}

func newInvalidStatus(current Status, required ...Status) *InvalidStatusError {
	return &InvalidStatusError{Current: current, Required: required}
}

func (e *InvalidStatusError) Error() string {
	required := make([]string, len(e.Required))
	for i, s := range e.Required {
		required[i] = string(s)
	}
	return fmt.Sprintf("appointment is %s, operation requires %s", e.Current, strings.Join(required, " or "))
}

// Is matches ErrInvalidStatus.
func (e *InvalidStatusError) Is(target error) bool {
	return target == ErrInvalidStatus
}

// Unwrap exposes the domain kind to errors.As.
func (e *InvalidStatusError) Unwrap() error {
	return ErrInvalidStatus
}

func blankField(field string) error {
	return fmt.Errorf("%w: %s must not be blank", sharedDomain.ErrInvalidInput, field)
}
