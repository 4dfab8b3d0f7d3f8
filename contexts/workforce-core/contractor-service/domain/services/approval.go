package services

import (
	"foreman/contexts/workforce-core/contractor-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
)

// Transition validates the single-use review move pending → approved|rejected.
// Approved and rejected are terminal: a second review of either kind fails
// with a state conflict so callers can detect double submission.
func Transition(current entities.ApprovalState, to entities.ApprovalState) error {
	if to != entities.ApprovalStateApproved && to != entities.ApprovalStateRejected {
		return domainerrors.ErrInvalidRequest
	}
	if current != entities.ApprovalStatePending {
		return domainerrors.ErrStateConflict
	}
	return nil
}

// Apply produces the reviewed contractor. The boss link is set on approval
// only, which keeps the boss-iff-approved invariant by construction.
func Apply(contractor entities.Contractor, to entities.ApprovalState, bossID string) (entities.Contractor, error) {
	if err := Transition(contractor.ApprovalState, to); err != nil {
		return entities.Contractor{}, err
	}
	contractor.ApprovalState = to
	if to == entities.ApprovalStateApproved {
		contractor.BossID = &bossID
	} else {
		contractor.BossID = nil
	}
	return contractor, nil
}
