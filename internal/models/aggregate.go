package models

// WeeklyAggregate holds mean timing metrics for one ISO week bucket.
// Means are rounded to one decimal place and cover Completed records only.
type WeeklyAggregate struct {
	Week        int
	MeanWait    float64
	MeanService float64
	MeanTotal   float64
	MeanDelay   float64
}

// HourlyAggregate holds mean timing metrics for one reservation-hour bucket.
type HourlyAggregate struct {
	Hour        int
	MeanWait    float64
	MeanService float64
	MeanTotal   float64
	MeanDelay   float64
}

// PeriodSummary holds overall means across a filtered record set, shown in
// the dashboard header cards.
type PeriodSummary struct {
	Records     int
	MeanWait    float64
	MeanService float64
	MeanTotal   float64
	MeanDelay   float64
}
