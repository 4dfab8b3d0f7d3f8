package services

import (
	"math"

	"foreman/contexts/workforce-core/timesheet-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
)

const maxHoursPerDay = 24

// ValidateHours checks a submission's hours map against its period. Every day
// key must exist in the period's calendar and every value must fit a single
// day. An empty map is its own failure so the caller can tell "nothing
// submitted" apart from "bad day or hour".
func ValidateHours(period entities.Period, hoursByDay map[int]float64) error {
	if !period.Valid() {
		return domainerrors.ErrInvalidRequest
	}
	if len(hoursByDay) == 0 {
		return domainerrors.ErrEmptyTimesheet
	}
	days := period.DaysInMonth()
	for day, hours := range hoursByDay {
		if day < 1 || day > days {
			return domainerrors.ErrInvalidHours
		}
		if hours < 0 || hours > maxHoursPerDay {
			return domainerrors.ErrInvalidHours
		}
	}
	return nil
}

// TotalHours sums the submitted hours.
func TotalHours(hoursByDay map[int]float64) float64 {
	var total float64
	for _, hours := range hoursByDay {
		total += hours
	}
	return round2(total)
}

// EstimatedPay prices a submission at the rate pinned when it was created.
func EstimatedPay(totalHours float64, rateAtSubmission float64) float64 {
	return round2(totalHours * rateAtSubmission)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
