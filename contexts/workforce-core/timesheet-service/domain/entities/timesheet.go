package entities

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar month. Timesheets are keyed by (contractor, period),
// so the pair identifies at most one stored row.
type Period struct {
	Year  int
	Month int
}

// ParsePeriod accepts the wire form "2006-01".
func ParsePeriod(raw string) (Period, error) {
	parsed, err := time.Parse("2006-01", strings.TrimSpace(raw))
	if err != nil {
		return Period{}, err
	}
	return Period{Year: parsed.Year(), Month: int(parsed.Month())}, nil
}

func (p Period) Valid() bool {
	return p.Year >= 1 && p.Month >= 1 && p.Month <= 12
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// DaysInMonth is calendar-aware, so February of a leap year reports 29.
func (p Period) DaysInMonth() int {
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Before orders periods chronologically.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// Timesheet is one contractor's submission for one period. TotalHours and
// EstimatedPay are derived from HoursByDay and RateAtSubmission when the row
// is written; they are never edited directly and never recomputed when the
// contractor's current rate changes later.
type Timesheet struct {
	TimesheetID      string
	OrgID            string
	ContractorID     string
	Period           Period
	HoursByDay       map[int]float64
	ImageURLs        []string
	RateAtSubmission float64
	TotalHours       float64
	EstimatedPay     float64
	SubmittedAt      time.Time
}
