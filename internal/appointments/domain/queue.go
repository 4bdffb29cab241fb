package domain

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// SortQueue orders appointments first-checked-in, first-served. Equal
// check-in times fall back to id order so the head is deterministic.
func SortQueue(queue []*Appointment) {
	sort.SliceStable(queue, func(i, j int) bool {
		return queueLess(queue[i], queue[j])
	})
}

func queueLess(a, b *Appointment) bool {
	at, bt := a.CheckInTime(), b.CheckInTime()
	switch {
	case at == nil && bt != nil:
		return false
	case at != nil && bt == nil:
		return true
	case at != nil && bt != nil && !at.Equal(*bt):
		return at.Before(*bt)
	}
	aid, bid := a.ID(), b.ID()
	return bytes.Compare(aid[:], bid[:]) < 0
}

// SelectNext picks the appointment doctorID should see next: the oldest
// checked-in appointment with no preferred doctor or preferring doctorID.
func SelectNext(queue []*Appointment, doctorID uuid.UUID) (*Appointment, error) {
	waiting := make([]*Appointment, 0, len(queue))
	for _, a := range queue {
		if a.Status() == StatusCheckedIn {
			waiting = append(waiting, a)
		}
	}
	if len(waiting) == 0 {
		return nil, ErrQueueEmpty
	}

	SortQueue(waiting)
	for _, a := range waiting {
		if a.IsEligibleFor(doctorID) {
			return a, nil
		}
	}
	return nil, ErrNoMatchingAppointment
}
