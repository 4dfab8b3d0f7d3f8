package services

import (
	"errors"
	"testing"

	"foreman/contexts/workforce-core/contractor-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
)

func TestTransitionPendingToTerminal(t *testing.T) {
	if err := Transition(entities.ApprovalStatePending, entities.ApprovalStateApproved); err != nil {
		t.Fatalf("pending to approved should be allowed: %v", err)
	}
	if err := Transition(entities.ApprovalStatePending, entities.ApprovalStateRejected); err != nil {
		t.Fatalf("pending to rejected should be allowed: %v", err)
	}
}

func TestTransitionTerminalStatesAreFinal(t *testing.T) {
	cases := []struct {
		current entities.ApprovalState
		to      entities.ApprovalState
	}{
		{entities.ApprovalStateApproved, entities.ApprovalStateApproved},
		{entities.ApprovalStateApproved, entities.ApprovalStateRejected},
		{entities.ApprovalStateRejected, entities.ApprovalStateApproved},
		{entities.ApprovalStateRejected, entities.ApprovalStateRejected},
	}
	for _, tc := range cases {
		if err := Transition(tc.current, tc.to); !errors.Is(err, domainerrors.ErrStateConflict) {
			t.Fatalf("transition %s to %s: expected state conflict, got %v", tc.current, tc.to, err)
		}
	}
}

func TestTransitionRejectsUnknownTarget(t *testing.T) {
	if err := Transition(entities.ApprovalStatePending, entities.ApprovalStatePending); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for pending target, got %v", err)
	}
	if err := Transition(entities.ApprovalStatePending, entities.ApprovalState("archived")); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for unknown target, got %v", err)
	}
}

func TestApplySetsBossOnlyOnApproval(t *testing.T) {
	pending := entities.Contractor{
		ContractorID:  "ctr_000001",
		OrgID:         "org-1",
		ApprovalState: entities.ApprovalStatePending,
	}

	approved, err := Apply(pending, entities.ApprovalStateApproved, "boss-1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.BossID == nil || *approved.BossID != "boss-1" {
		t.Fatalf("approved contractor must carry the reviewing boss, got %v", approved.BossID)
	}
	if !approved.InvariantHolds() {
		t.Fatal("approved contractor violates boss-iff-approved invariant")
	}

	rejected, err := Apply(pending, entities.ApprovalStateRejected, "boss-1")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.BossID != nil {
		t.Fatalf("rejected contractor must not carry a boss, got %v", *rejected.BossID)
	}
	if !rejected.InvariantHolds() {
		t.Fatal("rejected contractor violates boss-iff-approved invariant")
	}
}
