package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"foreman/contexts/workforce-core/timesheet-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
	"foreman/contexts/workforce-core/timesheet-service/ports"
)

// Store is the in-memory timesheet ledger used by tests and local wiring.
// The upsert runs whole under the write lock, so concurrent resubmissions
// for the same (contractor, period) serialize and the stored row is exactly
// one submission, never a blend of two.
type Store struct {
	mu         sync.RWMutex
	timesheets map[string]entities.Timesheet
	sequence   uint64
}

func NewStore() *Store {
	return &Store{timesheets: make(map[string]entities.Timesheet)}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("ts_%06d", s.sequence), nil
}

func (s *Store) UpsertTimesheet(_ context.Context, sheet entities.Timesheet) (entities.Timesheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rowKey(sheet.ContractorID, sheet.Period)
	if existing, ok := s.timesheets[key]; ok {
		// Replacement keeps the original row identity.
		sheet.TimesheetID = existing.TimesheetID
	}
	s.timesheets[key] = cloneTimesheet(sheet)
	return cloneTimesheet(sheet), nil
}

func (s *Store) GetTimesheet(_ context.Context, orgID string, contractorID string, period entities.Period) (entities.Timesheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sheet, ok := s.timesheets[rowKey(contractorID, period)]
	if !ok || sheet.OrgID != orgID {
		return entities.Timesheet{}, domainerrors.ErrTimesheetNotFound
	}
	return cloneTimesheet(sheet), nil
}

func (s *Store) ListTimesheets(_ context.Context, orgID string, filter ports.Filter) ([]entities.Timesheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.Timesheet, 0)
	for _, sheet := range s.timesheets {
		if sheet.OrgID != orgID {
			continue
		}
		if filter.ContractorID != "" && sheet.ContractorID != filter.ContractorID {
			continue
		}
		if filter.Period != nil && sheet.Period != *filter.Period {
			continue
		}
		result = append(result, cloneTimesheet(sheet))
	}
	return result, nil
}

func (s *Store) ContractorsWithTimesheet(_ context.Context, orgID string, period entities.Period) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submitted := make(map[string]bool)
	for _, sheet := range s.timesheets {
		if sheet.OrgID == orgID && sheet.Period == period {
			submitted[sheet.ContractorID] = true
		}
	}
	return submitted, nil
}

func rowKey(contractorID string, period entities.Period) string {
	return contractorID + "|" + period.String()
}

// cloneTimesheet keeps callers from mutating stored map and slice state.
func cloneTimesheet(sheet entities.Timesheet) entities.Timesheet {
	hours := make(map[int]float64, len(sheet.HoursByDay))
	for day, value := range sheet.HoursByDay {
		hours[day] = value
	}
	sheet.HoursByDay = hours
	sheet.ImageURLs = append([]string(nil), sheet.ImageURLs...)
	return sheet
}
