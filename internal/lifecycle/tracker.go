// Package lifecycle implements the order lifecycle state machine: the rules
// that move an order from Pending through Arrived to Completed and derive
// timing fields at each transition.
//
// Transitions are one-directional. All functions operate on a snapshot
// passed in by the caller; a registration either applies fully or leaves the
// snapshot unmodified.
package lifecycle

import (
	"math"
	"sort"
	"time"

	"github.com/d-olmeda/dockside-tui/internal/models"
	"github.com/d-olmeda/dockside-tui/internal/timeparse"
)

// RegisterArrival records the physical arrival of a reserved order, creating
// the management record (or updating it in place when arrival was registered
// earlier but service was not). An already-completed order is rejected with
// ErrDuplicateTransition.
//
// The delay is derived from the reservation's booked slot on the arrival's
// calendar date. An unparseable booked slot is tolerated: the delay degrades
// to zero and the reservation hour stays unset.
func RegisterArrival(snap *models.Snapshot, res models.Reservation, arrivalTime time.Time) (models.ManagementRecord, error) {
	idx := snap.FindRecord(res.OrderID)
	if idx >= 0 && snap.Management[idx].State() == models.StateCompleted {
		return snap.Management[idx].Clone(), ErrDuplicateTransition
	}

	delay := 0
	var reservationHour *int

	booked, ok := timeparse.Parse(res.BookedSlot)
	if !ok {
		booked, ok = timeparse.SplitClock(res.BookedSlot)
	}
	if ok {
		delay = wholeMinutes(arrivalTime.Sub(booked.On(arrivalTime)))
		h := booked.Hour
		reservationHour = &h
	}

	_, week := arrivalTime.ISOWeek()
	arrival := arrivalTime

	if idx >= 0 {
		rec := &snap.Management[idx]
		rec.ArrivalTime = &arrival
		rec.DelayMinutes = &delay
		rec.WeekNumber = &week
		rec.ReservationHour = reservationHour
		return rec.Clone(), nil
	}

	rec := models.ManagementRecord{
		OrderID:         res.OrderID,
		Provider:        res.Provider,
		BundleCount:     res.BundleCount,
		ArrivalTime:     &arrival,
		DelayMinutes:    &delay,
		WeekNumber:      &week,
		ReservationHour: reservationHour,
	}
	snap.Management = append(snap.Management, rec)
	return rec.Clone(), nil
}

// RegisterService records the service window for an arrived order and
// derives wait, service and total minutes. It is the one-time transition to
// Completed: a second call fails with ErrDuplicateTransition, and any
// validation failure leaves the record unmodified.
func RegisterService(snap *models.Snapshot, orderID string, serviceStart, serviceEnd time.Time) (models.ManagementRecord, error) {
	idx := snap.FindRecord(orderID)
	if idx < 0 || snap.Management[idx].ArrivalTime == nil {
		return models.ManagementRecord{}, ErrNotArrived
	}

	rec := &snap.Management[idx]
	if rec.State() == models.StateCompleted {
		return rec.Clone(), ErrDuplicateTransition
	}
	if !serviceEnd.After(serviceStart) {
		return rec.Clone(), ErrInvalidOrder
	}
	if serviceStart.Before(*rec.ArrivalTime) {
		return rec.Clone(), ErrServiceBeforeArrival
	}

	wait := wholeMinutes(serviceStart.Sub(*rec.ArrivalTime))
	service := wholeMinutes(serviceEnd.Sub(serviceStart))
	total := wholeMinutes(serviceEnd.Sub(*rec.ArrivalTime))

	start, end := serviceStart, serviceEnd
	rec.ServiceStart = &start
	rec.ServiceEnd = &end
	rec.WaitMinutes = &wait
	rec.ServiceMinutes = &service
	rec.TotalMinutes = &total
	return rec.Clone(), nil
}

// Pending returns the order ids of today's reservations with no registered
// arrival and no completion, ordered lexicographically.
func Pending(reservations []models.Reservation, records []models.ManagementRecord, today time.Time) []string {
	processed := make(map[string]struct{})
	for _, id := range ArrivedNotCompleted(records, today) {
		processed[id] = struct{}{}
	}
	for _, id := range Completed(records, today) {
		processed[id] = struct{}{}
	}

	var pending []string
	for _, res := range reservations {
		if !models.SameDay(res.Date, today) {
			continue
		}
		if _, ok := processed[res.OrderID]; !ok {
			pending = append(pending, res.OrderID)
		}
	}
	sort.Strings(pending)
	return pending
}

// ArrivedNotCompleted returns the order ids of today's records that have an
// arrival but are missing at least one service field, ordered
// lexicographically.
func ArrivedNotCompleted(records []models.ManagementRecord, today time.Time) []string {
	var ids []string
	for i := range records {
		rec := &records[i]
		if !rec.ArrivedOn(today) {
			continue
		}
		if rec.ServiceStart == nil || rec.ServiceEnd == nil {
			ids = append(ids, rec.OrderID)
		}
	}
	sort.Strings(ids)
	return ids
}

// Completed returns the order ids of today's records with both service
// fields set.
func Completed(records []models.ManagementRecord, today time.Time) []string {
	var ids []string
	for i := range records {
		rec := &records[i]
		if rec.ArrivedOn(today) && rec.ServiceStart != nil && rec.ServiceEnd != nil {
			ids = append(ids, rec.OrderID)
		}
	}
	return ids
}

// wholeMinutes converts a duration to signed whole minutes.
func wholeMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
