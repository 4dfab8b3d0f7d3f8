package services

import (
	"errors"
	"testing"

	"foreman/contexts/workforce-core/timesheet-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
)

func TestValidateHoursAcceptsFullMonth(t *testing.T) {
	period := entities.Period{Year: 2024, Month: 1}
	hours := map[int]float64{1: 8, 15: 7.5, 31: 0}
	if err := ValidateHours(period, hours); err != nil {
		t.Fatalf("valid january submission rejected: %v", err)
	}
}

func TestValidateHoursRejectsDayOutsideCalendar(t *testing.T) {
	// April has 30 days.
	period := entities.Period{Year: 2024, Month: 4}
	if err := ValidateHours(period, map[int]float64{31: 5}); !errors.Is(err, domainerrors.ErrInvalidHours) {
		t.Fatalf("expected invalid hours for day 31 of april, got %v", err)
	}
	if err := ValidateHours(period, map[int]float64{0: 5}); !errors.Is(err, domainerrors.ErrInvalidHours) {
		t.Fatalf("expected invalid hours for day 0, got %v", err)
	}
}

func TestValidateHoursRespectsLeapFebruary(t *testing.T) {
	leap := entities.Period{Year: 2024, Month: 2}
	if err := ValidateHours(leap, map[int]float64{29: 8}); err != nil {
		t.Fatalf("day 29 of a leap february rejected: %v", err)
	}
	common := entities.Period{Year: 2023, Month: 2}
	if err := ValidateHours(common, map[int]float64{29: 8}); !errors.Is(err, domainerrors.ErrInvalidHours) {
		t.Fatalf("expected invalid hours for day 29 of a common february, got %v", err)
	}
}

func TestValidateHoursRejectsOutOfRangeValues(t *testing.T) {
	period := entities.Period{Year: 2024, Month: 3}
	if err := ValidateHours(period, map[int]float64{1: -1}); !errors.Is(err, domainerrors.ErrInvalidHours) {
		t.Fatalf("expected invalid hours for negative value, got %v", err)
	}
	if err := ValidateHours(period, map[int]float64{1: 24.5}); !errors.Is(err, domainerrors.ErrInvalidHours) {
		t.Fatalf("expected invalid hours for value over 24, got %v", err)
	}
	if err := ValidateHours(period, map[int]float64{1: 24}); err != nil {
		t.Fatalf("a full 24 hour day should be allowed: %v", err)
	}
}

func TestValidateHoursRejectsEmptyMap(t *testing.T) {
	period := entities.Period{Year: 2024, Month: 3}
	if err := ValidateHours(period, map[int]float64{}); !errors.Is(err, domainerrors.ErrEmptyTimesheet) {
		t.Fatalf("expected empty timesheet error, got %v", err)
	}
	if err := ValidateHours(period, nil); !errors.Is(err, domainerrors.ErrEmptyTimesheet) {
		t.Fatalf("expected empty timesheet error for nil map, got %v", err)
	}
}

func TestPayComputation(t *testing.T) {
	hours := map[int]float64{1: 8, 2: 8}
	total := TotalHours(hours)
	if total != 16 {
		t.Fatalf("expected 16 total hours, got %v", total)
	}
	if pay := EstimatedPay(total, 20); pay != 320 {
		t.Fatalf("expected estimated pay 320, got %v", pay)
	}
}

func TestPayComputationRoundsToCents(t *testing.T) {
	total := TotalHours(map[int]float64{1: 7.33, 2: 1.5})
	if total != 8.83 {
		t.Fatalf("expected 8.83 total hours, got %v", total)
	}
	if pay := EstimatedPay(total, 19.99); pay != 176.51 {
		t.Fatalf("expected estimated pay 176.51, got %v", pay)
	}
}
