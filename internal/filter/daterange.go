package filter

import (
	"time"

	"explorekit/internal/dataset"
)

// DateRange keeps rows whose Column date lies in [Start, End], comparing
// calendar days only.
type DateRange struct {
	Column string    `json:"column"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// SliceDates applies r to ds. When r names no Date column the dataset passes
// through unchanged.
func SliceDates(ds *dataset.Dataset, r DateRange) *dataset.Dataset {
	col, ok := ds.Column(r.Column)
	if !ok || col.Kind != dataset.Date {
		return ds
	}

	start := dateOnly(r.Start)
	end := dateOnly(r.End)
	return ds.Where(func(row int) bool {
		cell := col.Cells[row]
		if !cell.Valid {
			return false
		}
		day := dateOnly(cell.Time)
		return !day.Before(start) && !day.After(end)
	})
}

// DateBounds returns the earliest and latest calendar day in a Date column.
func DateBounds(ds *dataset.Dataset, column string) (start, end time.Time, ok bool) {
	col, found := ds.Column(column)
	if !found || col.Kind != dataset.Date {
		return time.Time{}, time.Time{}, false
	}
	for _, cell := range col.Cells {
		if !cell.Valid {
			continue
		}
		day := dateOnly(cell.Time)
		if !ok || day.Before(start) {
			start = day
		}
		if !ok || day.After(end) {
			end = day
		}
		ok = true
	}
	return start, end, ok
}

// DefaultRange picks the first Date column of ds and spans all of it.
func DefaultRange(ds *dataset.Dataset) (DateRange, bool) {
	for _, name := range ds.NamesOfKind(dataset.Date) {
		if start, end, ok := DateBounds(ds, name); ok {
			return DateRange{Column: name, Start: start, End: end}, true
		}
	}
	return DateRange{}, false
}

// dateOnly drops the clock and zone so days compare by their wall date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
