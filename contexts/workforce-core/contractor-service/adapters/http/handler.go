package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"foreman/contexts/workforce-core/contractor-service/application/commands"
	"foreman/contexts/workforce-core/contractor-service/application/queries"
	"foreman/contexts/workforce-core/contractor-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
	"foreman/contexts/workforce-core/contractor-service/ports"
	httptransport "foreman/contexts/workforce-core/contractor-service/transport/http"
)

type Handler struct {
	ApplyContractor  commands.ApplyContractorUseCase
	ReviewContractor commands.ReviewContractorUseCase
	SetPayRate       commands.SetPayRateUseCase
	ListContractors  queries.ListContractorsUseCase
	Logger           *slog.Logger
}

func (h Handler) ApplyContractorHandler(
	ctx context.Context,
	orgID string,
	req httptransport.ApplyContractorRequest,
) (httptransport.ApplyContractorResponse, error) {
	contractor, err := h.ApplyContractor.Execute(ctx, commands.ApplyContractorCommand{
		OrgID: orgID,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return httptransport.ApplyContractorResponse{}, err
	}
	return httptransport.ApplyContractorResponse{Contractor: mapContractor(contractor)}, nil
}

func (h Handler) ApproveContractorHandler(
	ctx context.Context,
	actor ports.Actor,
	contractorID string,
) (httptransport.ReviewContractorResponse, error) {
	contractor, err := h.ReviewContractor.Approve(ctx, actor, contractorID)
	if err != nil {
		return httptransport.ReviewContractorResponse{}, err
	}
	return httptransport.ReviewContractorResponse{Contractor: mapContractor(contractor)}, nil
}

func (h Handler) RejectContractorHandler(
	ctx context.Context,
	actor ports.Actor,
	contractorID string,
) (httptransport.ReviewContractorResponse, error) {
	contractor, err := h.ReviewContractor.Reject(ctx, actor, contractorID)
	if err != nil {
		return httptransport.ReviewContractorResponse{}, err
	}
	return httptransport.ReviewContractorResponse{Contractor: mapContractor(contractor)}, nil
}

func (h Handler) SetPayRateHandler(
	ctx context.Context,
	actor ports.Actor,
	contractorID string,
	req httptransport.SetPayRateRequest,
) (httptransport.SetPayRateResponse, error) {
	contractor, err := h.SetPayRate.Execute(ctx, actor, contractorID, req.Rate)
	if err != nil {
		return httptransport.SetPayRateResponse{}, err
	}
	return httptransport.SetPayRateResponse{Contractor: mapContractor(contractor)}, nil
}

func (h Handler) RosterHandler(
	ctx context.Context,
	actor ports.Actor,
	period string,
) (httptransport.RosterResponse, error) {
	parsed, err := parsePeriod(period)
	if err != nil {
		return httptransport.RosterResponse{}, domainerrors.ErrInvalidRequest
	}
	entries, err := h.ListContractors.Roster(ctx, actor, parsed)
	if err != nil {
		return httptransport.RosterResponse{}, err
	}
	items := make([]httptransport.RosterEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, httptransport.RosterEntryDTO{
			Contractor:   mapContractor(entry.Contractor),
			HasTimesheet: entry.HasTimesheet,
		})
	}
	return httptransport.RosterResponse{Period: period, Items: items}, nil
}

func (h Handler) DropdownHandler(
	ctx context.Context,
	actor ports.Actor,
	includePending bool,
	includeRejected bool,
) (httptransport.DropdownResponse, error) {
	contractors, err := h.ListContractors.Dropdown(ctx, actor, queries.DropdownFilter{
		IncludePending:  includePending,
		IncludeRejected: includeRejected,
	})
	if err != nil {
		return httptransport.DropdownResponse{}, err
	}
	items := make([]httptransport.ContractorDTO, 0, len(contractors))
	for _, contractor := range contractors {
		items = append(items, mapContractor(contractor))
	}
	return httptransport.DropdownResponse{Items: items}, nil
}

func parsePeriod(raw string) (ports.Period, error) {
	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		return ports.Period{}, err
	}
	return ports.Period{Year: parsed.Year(), Month: int(parsed.Month())}, nil
}

func mapContractor(contractor entities.Contractor) httptransport.ContractorDTO {
	return httptransport.ContractorDTO{
		ContractorID:  contractor.ContractorID,
		OrgID:         contractor.OrgID,
		Name:          contractor.Name,
		Email:         contractor.Email,
		BossID:        contractor.BossID,
		PayRate:       contractor.PayRate,
		ApprovalState: string(contractor.ApprovalState),
		AppliedAt:     contractor.AppliedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     contractor.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
