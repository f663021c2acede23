package metrics

import (
	"sort"
	"testing"
	"time"

	"github.com/d-olmeda/dockside-tui/internal/models"
)

func completedRec(orderID, provider string, week, hour, wait, service, total, delay int) models.ManagementRecord {
	arrival := time.Date(2025, 3, 3, 10, 0, 0, 0, time.Local)
	return models.ManagementRecord{
		OrderID:         orderID,
		Provider:        provider,
		ArrivalTime:     &arrival,
		ServiceStart:    &arrival,
		ServiceEnd:      &arrival,
		WeekNumber:      &week,
		ReservationHour: &hour,
		WaitMinutes:     &wait,
		ServiceMinutes:  &service,
		TotalMinutes:    &total,
		DelayMinutes:    &delay,
	}
}

func arrivedRec(orderID string, week int) models.ManagementRecord {
	arrival := time.Date(2025, 3, 3, 10, 0, 0, 0, time.Local)
	delay := 5
	return models.ManagementRecord{
		OrderID:      orderID,
		ArrivalTime:  &arrival,
		WeekNumber:   &week,
		DelayMinutes: &delay,
	}
}

func TestCompletedWeeks(t *testing.T) {
	// 2025-03-05 falls in ISO week 10.
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.Local)

	records := []models.ManagementRecord{
		completedRec("W7", "Acme", 7, 10, 1, 1, 2, 0),
		completedRec("W8", "Acme", 8, 10, 1, 1, 2, 0),
		completedRec("W9", "Acme", 9, 10, 1, 1, 2, 0),
		completedRec("W10", "Acme", 10, 10, 1, 1, 2, 0), // current week, excluded
		arrivedRec("W9-open", 9),                        // not completed, excluded
	}

	got := CompletedWeeks(records, 2, now)

	ids := make([]string, len(got))
	for i, rec := range got {
		ids[i] = rec.OrderID
	}
	sort.Strings(ids)

	want := []string{"W8", "W9"}
	if len(ids) != len(want) || ids[0] != want[0] || ids[1] != want[1] {
		t.Errorf("CompletedWeeks() = %v, want %v", ids, want)
	}
}

func TestCompletedWeeks_ExcludesCurrentWeekEvenWhenCompleted(t *testing.T) {
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.Local) // ISO week 10
	records := []models.ManagementRecord{
		completedRec("W10", "Acme", 10, 10, 1, 1, 2, 0),
	}

	if got := CompletedWeeks(records, 4, now); len(got) != 0 {
		t.Errorf("CompletedWeeks() = %d rows, current week must be excluded", len(got))
	}
}

func TestAggregateByWeek(t *testing.T) {
	records := []models.ManagementRecord{
		completedRec("A", "Acme", 8, 10, 3, 30, 33, 7),
		completedRec("B", "Acme", 8, 10, 5, 20, 25, -4),
		completedRec("C", "Acme", 9, 10, 10, 10, 20, 0),
	}

	got := AggregateByWeek(records, "")
	if len(got) != 2 {
		t.Fatalf("AggregateByWeek() returned %d groups, want 2", len(got))
	}

	byWeek := make(map[int]models.WeeklyAggregate)
	for _, agg := range got {
		byWeek[agg.Week] = agg
	}

	w8 := byWeek[8]
	if w8.MeanWait != 4.0 {
		t.Errorf("week 8 MeanWait = %v, want 4.0", w8.MeanWait)
	}
	if w8.MeanService != 25.0 {
		t.Errorf("week 8 MeanService = %v, want 25.0", w8.MeanService)
	}
	if w8.MeanTotal != 29.0 {
		t.Errorf("week 8 MeanTotal = %v, want 29.0", w8.MeanTotal)
	}
	if w8.MeanDelay != 1.5 {
		t.Errorf("week 8 MeanDelay = %v, want 1.5", w8.MeanDelay)
	}
}

func TestAggregateByWeek_ProviderFilter(t *testing.T) {
	records := []models.ManagementRecord{
		completedRec("A", "Acme", 8, 10, 4, 30, 34, 0),
		completedRec("B", "Globex", 8, 10, 100, 100, 200, 50),
	}

	got := AggregateByWeek(records, "Acme")
	if len(got) != 1 {
		t.Fatalf("AggregateByWeek() returned %d groups, want 1", len(got))
	}
	if got[0].MeanWait != 4.0 {
		t.Errorf("MeanWait = %v, filter leaked other provider", got[0].MeanWait)
	}
}

func TestAggregateByWeek_Rounding(t *testing.T) {
	records := []models.ManagementRecord{
		completedRec("A", "Acme", 8, 10, 1, 1, 2, 1),
		completedRec("B", "Acme", 8, 10, 2, 1, 3, 1),
		completedRec("C", "Acme", 8, 10, 2, 1, 3, 1),
	}

	got := AggregateByWeek(records, "")
	if len(got) != 1 {
		t.Fatalf("AggregateByWeek() returned %d groups, want 1", len(got))
	}
	// 5/3 = 1.666... rounds to 1.7
	if got[0].MeanWait != 1.7 {
		t.Errorf("MeanWait = %v, want 1.7", got[0].MeanWait)
	}
}

func TestAggregateByHour_DropsNilHour(t *testing.T) {
	noHour := completedRec("B", "Acme", 8, 0, 5, 5, 10, 0)
	noHour.ReservationHour = nil

	records := []models.ManagementRecord{
		completedRec("A", "Acme", 8, 10, 3, 30, 33, 7),
		noHour,
	}

	got := AggregateByHour(records, "")
	if len(got) != 1 {
		t.Fatalf("AggregateByHour() returned %d groups, want 1", len(got))
	}
	if got[0].Hour != 10 {
		t.Errorf("Hour = %d, want 10", got[0].Hour)
	}
	if got[0].MeanWait != 3.0 {
		t.Errorf("MeanWait = %v, nil-hour row leaked into bucket", got[0].MeanWait)
	}
}

func TestAggregations_Idempotent(t *testing.T) {
	records := []models.ManagementRecord{
		completedRec("A", "Acme", 8, 10, 3, 30, 33, 7),
		completedRec("B", "Globex", 9, 11, 5, 20, 25, -4),
	}

	first := AggregateByWeek(records, "")
	second := AggregateByWeek(records, "")

	sortWeekly := func(aggs []models.WeeklyAggregate) {
		sort.Slice(aggs, func(i, j int) bool { return aggs[i].Week < aggs[j].Week })
	}
	sortWeekly(first)
	sortWeekly(second)

	if len(first) != len(second) {
		t.Fatalf("re-run changed group count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("group %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSummary(t *testing.T) {
	records := []models.ManagementRecord{
		completedRec("A", "Acme", 8, 10, 3, 30, 33, 7),
		completedRec("B", "Acme", 8, 10, 5, 20, 25, -4),
		arrivedRec("C", 8), // not completed, excluded from means
	}

	got := Summary(records, "")
	if got.Records != 2 {
		t.Errorf("Records = %d, want 2", got.Records)
	}
	if got.MeanWait != 4.0 {
		t.Errorf("MeanWait = %v, want 4.0", got.MeanWait)
	}
	if got.MeanDelay != 1.5 {
		t.Errorf("MeanDelay = %v, want 1.5", got.MeanDelay)
	}
}

func TestSummary_Empty(t *testing.T) {
	got := Summary(nil, "")
	if got.Records != 0 || got.MeanWait != 0 || got.MeanTotal != 0 {
		t.Errorf("Summary(nil) = %+v, want zeros", got)
	}
}

func TestProviders(t *testing.T) {
	records := []models.ManagementRecord{
		completedRec("A", "Globex", 8, 10, 1, 1, 2, 0),
		completedRec("B", "Acme", 8, 10, 1, 1, 2, 0),
		completedRec("C", "Globex", 9, 10, 1, 1, 2, 0),
	}

	// Output is sorted regardless of record order, so the dashboard's
	// provider cycle is stable across reloads.
	got := Providers(records)
	if len(got) != 2 || got[0] != "Acme" || got[1] != "Globex" {
		t.Errorf("Providers() = %v, want [Acme Globex]", got)
	}
}
