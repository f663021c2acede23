// Package metrics aggregates completed management records into weekly and
// hourly summaries for the dashboard. All functions are pure: no hidden
// state, deterministic, safely re-invocable.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/d-olmeda/dockside-tui/internal/models"
)

// CompletedWeeks filters records down to completed rows from fully elapsed
// ISO weeks: the target set is {current-1, ..., current-weeksBack}, always
// excluding the in-progress week.
//
// Week numbers are not year-aware; near a year boundary buckets from
// different years can alias, and in January the target set may contain
// non-positive numbers that match nothing.
func CompletedWeeks(records []models.ManagementRecord, weeksBack int, now time.Time) []models.ManagementRecord {
	_, currentWeek := now.ISOWeek()

	targets := make(map[int]struct{}, weeksBack)
	for i := 1; i <= weeksBack; i++ {
		targets[currentWeek-i] = struct{}{}
	}

	var out []models.ManagementRecord
	for i := range records {
		rec := &records[i]
		if rec.WeekNumber == nil || rec.TotalMinutes == nil {
			continue
		}
		if _, ok := targets[*rec.WeekNumber]; ok {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// AggregateByWeek groups completed records by ISO week number and computes
// mean wait, service, total and delay minutes per group, each rounded to one
// decimal. An empty provider means no provider filter. Group order is
// unspecified; the consumer sorts for display.
func AggregateByWeek(records []models.ManagementRecord, provider string) []models.WeeklyAggregate {
	groups := groupTimings(records, provider, func(rec *models.ManagementRecord) (int, bool) {
		if rec.WeekNumber == nil {
			return 0, false
		}
		return *rec.WeekNumber, true
	})

	out := make([]models.WeeklyAggregate, 0, len(groups))
	for week, g := range groups {
		out = append(out, models.WeeklyAggregate{
			Week:        week,
			MeanWait:    g.mean(g.wait),
			MeanService: g.mean(g.service),
			MeanTotal:   g.mean(g.total),
			MeanDelay:   g.mean(g.delay),
		})
	}
	return out
}

// AggregateByHour groups completed records by reservation hour. Records with
// no reservation hour cannot be assigned a bucket and are dropped.
func AggregateByHour(records []models.ManagementRecord, provider string) []models.HourlyAggregate {
	groups := groupTimings(records, provider, func(rec *models.ManagementRecord) (int, bool) {
		if rec.ReservationHour == nil {
			return 0, false
		}
		return *rec.ReservationHour, true
	})

	out := make([]models.HourlyAggregate, 0, len(groups))
	for hour, g := range groups {
		out = append(out, models.HourlyAggregate{
			Hour:        hour,
			MeanWait:    g.mean(g.wait),
			MeanService: g.mean(g.service),
			MeanTotal:   g.mean(g.total),
			MeanDelay:   g.mean(g.delay),
		})
	}
	return out
}

// Summary computes overall means across the filtered record set for the
// dashboard header cards.
func Summary(records []models.ManagementRecord, provider string) models.PeriodSummary {
	g := timingGroup{}
	for i := range records {
		rec := &records[i]
		if !includeRecord(rec, provider) {
			continue
		}
		g.add(rec)
	}

	return models.PeriodSummary{
		Records:     g.count,
		MeanWait:    g.mean(g.wait),
		MeanService: g.mean(g.service),
		MeanTotal:   g.mean(g.total),
		MeanDelay:   g.mean(g.delay),
	}
}

// Providers returns the distinct provider names present, sorted, for filter
// options.
func Providers(records []models.ManagementRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range records {
		p := records[i].Provider
		if p == "" {
			continue
		}
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

type timingGroup struct {
	wait    int
	service int
	total   int
	delay   int
	count   int
}

func (g *timingGroup) add(rec *models.ManagementRecord) {
	g.wait += *rec.WaitMinutes
	g.service += *rec.ServiceMinutes
	g.total += *rec.TotalMinutes
	g.delay += *rec.DelayMinutes
	g.count++
}

func (g *timingGroup) mean(sum int) float64 {
	if g.count == 0 {
		return 0
	}
	return round1(float64(sum) / float64(g.count))
}

// includeRecord keeps completed rows matching the provider filter.
func includeRecord(rec *models.ManagementRecord, provider string) bool {
	if provider != "" && rec.Provider != provider {
		return false
	}
	return rec.WaitMinutes != nil && rec.ServiceMinutes != nil &&
		rec.TotalMinutes != nil && rec.DelayMinutes != nil
}

func groupTimings(records []models.ManagementRecord, provider string, key func(*models.ManagementRecord) (int, bool)) map[int]*timingGroup {
	groups := make(map[int]*timingGroup)
	for i := range records {
		rec := &records[i]
		if !includeRecord(rec, provider) {
			continue
		}
		k, ok := key(rec)
		if !ok {
			continue
		}
		g := groups[k]
		if g == nil {
			g = &timingGroup{}
			groups[k] = g
		}
		g.add(rec)
	}
	return groups
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
