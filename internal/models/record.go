package models

import "time"

// OrderState is the lifecycle stage of an order for a given day.
type OrderState int

const (
	// StatePending means a reservation exists with no registered arrival.
	StatePending OrderState = iota
	// StateArrived means arrival is registered, service is not.
	StateArrived
	// StateCompleted means arrival and both service times are registered.
	StateCompleted
)

// String returns the display name for an order state.
func (s OrderState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateArrived:
		return "Arrived"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Reservation is one booked delivery slot for a given date. Reservations are
// sourced entirely from the record store and never mutated here.
type Reservation struct {
	Date        time.Time
	OrderID     string
	Provider    string
	BookedSlot  string
	BundleCount int
}

// ManagementRecord is the tracked lifecycle row for an order that has at
// least reached Arrived. Derived and service fields are pointers: nil is the
// explicit "no value" marker, distinct from zero.
type ManagementRecord struct {
	ArrivalTime     *time.Time
	ServiceStart    *time.Time
	ServiceEnd      *time.Time
	WaitMinutes     *int
	ServiceMinutes  *int
	TotalMinutes    *int
	DelayMinutes    *int
	WeekNumber      *int
	ReservationHour *int
	OrderID         string
	Provider        string
	BundleCount     int
}

// State derives the lifecycle stage from which fields are set.
func (r *ManagementRecord) State() OrderState {
	switch {
	case r.ServiceStart != nil && r.ServiceEnd != nil:
		return StateCompleted
	case r.ArrivalTime != nil:
		return StateArrived
	default:
		return StatePending
	}
}

// ArrivedOn reports whether the record's arrival falls on the given date.
func (r *ManagementRecord) ArrivedOn(date time.Time) bool {
	return r.ArrivalTime != nil && SameDay(*r.ArrivalTime, date)
}

// Clone returns a deep copy of the record.
func (r *ManagementRecord) Clone() ManagementRecord {
	clone := *r
	clone.ArrivalTime = cloneTime(r.ArrivalTime)
	clone.ServiceStart = cloneTime(r.ServiceStart)
	clone.ServiceEnd = cloneTime(r.ServiceEnd)
	clone.WaitMinutes = cloneInt(r.WaitMinutes)
	clone.ServiceMinutes = cloneInt(r.ServiceMinutes)
	clone.TotalMinutes = cloneInt(r.TotalMinutes)
	clone.DelayMinutes = cloneInt(r.DelayMinutes)
	clone.WeekNumber = cloneInt(r.WeekNumber)
	clone.ReservationHour = cloneInt(r.ReservationHour)
	return clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

// CredentialRow is an opaque row of the credentials sheet. It is carried
// through reads and writes untouched.
type CredentialRow struct {
	Payload string
}

// Snapshot is one consistent view of the three persisted datasets.
type Snapshot struct {
	Credentials  []CredentialRow
	Reservations []Reservation
	Management   []ManagementRecord
}

// FindRecord returns the index of the management record for orderID, or -1.
func (s *Snapshot) FindRecord(orderID string) int {
	for i := range s.Management {
		if s.Management[i].OrderID == orderID {
			return i
		}
	}
	return -1
}

// FindReservation returns the index of the reservation for orderID, or -1.
func (s *Snapshot) FindReservation(orderID string) int {
	for i := range s.Reservations {
		if s.Reservations[i].OrderID == orderID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() Snapshot {
	clone := Snapshot{
		Credentials:  make([]CredentialRow, len(s.Credentials)),
		Reservations: make([]Reservation, len(s.Reservations)),
		Management:   make([]ManagementRecord, len(s.Management)),
	}
	copy(clone.Credentials, s.Credentials)
	copy(clone.Reservations, s.Reservations)
	for i := range s.Management {
		clone.Management[i] = s.Management[i].Clone()
	}
	return clone
}
