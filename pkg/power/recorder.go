package power

import (
	"sync"
	"time"
)

// TimeSeriesRecorder records the last N poll times.
type TimeSeriesRecorder struct {
	MaxRecordCount int
	records        []time.Time
	mu             *sync.Mutex
}

// NewTimeSeriesRecorder returns a new TimeSeriesRecorder.
func NewTimeSeriesRecorder(maxRecordCount int) *TimeSeriesRecorder {
	return &TimeSeriesRecorder{
		MaxRecordCount: maxRecordCount,
		records:        make([]time.Time, 0),
		mu:             &sync.Mutex{},
	}
}

// AddRecord adds a new record.
func (r *TimeSeriesRecorder) AddRecord(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Strip the monotonic clock reading, so that time.Since stays accurate
	// across system sleep.
	t = t.Round(0)

	if len(r.records) >= r.MaxRecordCount {
		r.records = r.records[1:]
	}
	r.records = append(r.records, t)
}

// GetRecords returns a copy of the records, oldest first.
func (r *TimeSeriesRecorder) GetRecords() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]time.Time(nil), r.records...)
}

// GetRecordsIn returns the number of continuous records in the last
// duration. Records are continuous when adjacent ones are less than
// interval+1s apart; a gap, such as the one left by system sleep, ends the
// run.
func (r *TimeSeriesRecorder) GetRecordsIn(last, interval time.Duration, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	slack := interval + time.Second

	// The last record must be within the last interval.
	if n := len(r.records); n == 0 || now.Sub(r.records[n-1]) >= slack {
		return 0
	}

	count := 0
	for i := len(r.records) - 1; i >= 0; i-- {
		record := r.records[i]
		if now.Sub(record) > last {
			break
		}

		theRecordAfter := record
		if i+1 < len(r.records) {
			theRecordAfter = r.records[i+1]
		}
		if theRecordAfter.Sub(record) >= slack {
			break
		}
		count++
	}

	return count
}
