package domain

import (
	"fmt"
	"strings"

	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
)

// Status is the position of an appointment in the visit lifecycle.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{StatusScheduled, StatusCheckedIn, StatusInProgress, StatusCompleted, StatusCancelled}

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", sharedDomain.ErrInvalidInput, s)
	}
	return status, nil
}

// IsValid checks if the status is supported.
func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCheckedIn, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}
