package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"foreman/contexts/workforce-core/contractor-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
	"foreman/contexts/workforce-core/contractor-service/ports"
)

// Store is the in-memory contractor ledger used by tests and local wiring.
// All mutations run under the write lock, so the approval compare-and-set is
// atomic: of two concurrent reviews one commits and the other observes the
// now-terminal state.
type Store struct {
	mu sync.RWMutex

	organizations map[string]entities.Organization
	bosses        map[string]entities.Boss
	contractors   map[string]entities.Contractor
	sequence      uint64
}

type Seed struct {
	Organizations []entities.Organization
	Bosses        []entities.Boss
	Contractors   []entities.Contractor
}

func NewStore(seed Seed) *Store {
	s := &Store{
		organizations: make(map[string]entities.Organization),
		bosses:        make(map[string]entities.Boss),
		contractors:   make(map[string]entities.Contractor),
	}
	for _, org := range seed.Organizations {
		s.organizations[org.OrgID] = org
	}
	for _, boss := range seed.Bosses {
		s.bosses[boss.BossID] = boss
	}
	for _, contractor := range seed.Contractors {
		s.contractors[contractor.ContractorID] = contractor
	}
	return s
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("ctr_%06d", s.sequence), nil
}

func (s *Store) CreateOrganization(_ context.Context, org entities.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.organizations[org.OrgID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	s.organizations[org.OrgID] = org
	return nil
}

func (s *Store) GetOrganization(_ context.Context, orgID string) (entities.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.organizations[strings.TrimSpace(orgID)]
	if !ok {
		return entities.Organization{}, domainerrors.ErrOrgNotFound
	}
	return org, nil
}

func (s *Store) CreateBoss(_ context.Context, boss entities.Boss) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.organizations[boss.OrgID]; !ok {
		return domainerrors.ErrOrgNotFound
	}
	s.bosses[boss.BossID] = boss
	return nil
}

func (s *Store) GetBoss(_ context.Context, orgID string, bossID string) (entities.Boss, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	boss, ok := s.bosses[strings.TrimSpace(bossID)]
	if !ok || boss.OrgID != orgID {
		return entities.Boss{}, domainerrors.ErrForbidden
	}
	return boss, nil
}

func (s *Store) CreateContractor(_ context.Context, contractor entities.Contractor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.organizations[contractor.OrgID]; !ok {
		return domainerrors.ErrOrgNotFound
	}
	// One application per contact address per organization.
	for _, existing := range s.contractors {
		if existing.OrgID == contractor.OrgID && existing.Email == contractor.Email {
			return domainerrors.ErrContractorExists
		}
	}
	s.contractors[contractor.ContractorID] = contractor
	return nil
}

func (s *Store) GetContractor(_ context.Context, orgID string, contractorID string) (entities.Contractor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getContractorLocked(orgID, contractorID)
}

func (s *Store) ListContractors(_ context.Context, orgID string, filter ports.ContractorFilter) ([]entities.Contractor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []entities.Contractor
	for _, contractor := range s.contractors {
		if contractor.OrgID != orgID {
			continue
		}
		if len(filter.States) > 0 && !stateIncluded(filter.States, contractor.ApprovalState) {
			continue
		}
		items = append(items, contractor)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AppliedAt.Equal(items[j].AppliedAt) {
			return items[i].ContractorID < items[j].ContractorID
		}
		return items[i].AppliedAt.Before(items[j].AppliedAt)
	})
	return items, nil
}

func (s *Store) TransitionApproval(
	_ context.Context,
	orgID string,
	contractorID string,
	to entities.ApprovalState,
	bossID *string,
	now time.Time,
) (entities.Contractor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contractor, err := s.getContractorLocked(orgID, contractorID)
	if err != nil {
		return entities.Contractor{}, err
	}
	if contractor.ApprovalState != entities.ApprovalStatePending {
		return entities.Contractor{}, domainerrors.ErrStateConflict
	}
	if !entities.IsValidApprovalState(to) || to == entities.ApprovalStatePending {
		return entities.Contractor{}, domainerrors.ErrInvalidRequest
	}

	contractor.ApprovalState = to
	contractor.BossID = nil
	if to == entities.ApprovalStateApproved {
		contractor.BossID = bossID
	}
	contractor.UpdatedAt = now.UTC()
	s.contractors[contractor.ContractorID] = contractor
	return contractor, nil
}

func (s *Store) SetPayRate(_ context.Context, orgID string, contractorID string, rate float64, now time.Time) (entities.Contractor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contractor, err := s.getContractorLocked(orgID, contractorID)
	if err != nil {
		return entities.Contractor{}, err
	}
	contractor.PayRate = &rate
	contractor.UpdatedAt = now.UTC()
	s.contractors[contractor.ContractorID] = contractor
	return contractor, nil
}

func (s *Store) getContractorLocked(orgID string, contractorID string) (entities.Contractor, error) {
	contractor, ok := s.contractors[strings.TrimSpace(contractorID)]
	if !ok || contractor.OrgID != strings.TrimSpace(orgID) {
		// A foreign-org ID answers exactly like an absent one.
		return entities.Contractor{}, domainerrors.ErrContractorNotFound
	}
	return contractor, nil
}

func stateIncluded(states []entities.ApprovalState, state entities.ApprovalState) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}
