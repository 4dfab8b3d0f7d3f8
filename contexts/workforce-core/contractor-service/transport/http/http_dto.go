package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ApplyContractorRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SetPayRateRequest struct {
	Rate float64 `json:"rate"`
}

type ContractorDTO struct {
	ContractorID  string   `json:"contractor_id"`
	OrgID         string   `json:"org_id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	BossID        *string  `json:"boss_id,omitempty"`
	PayRate       *float64 `json:"pay_rate,omitempty"`
	ApprovalState string   `json:"approval_state"`
	AppliedAt     string   `json:"applied_at"`
	UpdatedAt     string   `json:"updated_at"`
}

type ApplyContractorResponse struct {
	Contractor ContractorDTO `json:"contractor"`
}

type ReviewContractorResponse struct {
	Contractor ContractorDTO `json:"contractor"`
}

type SetPayRateResponse struct {
	Contractor ContractorDTO `json:"contractor"`
}

type RosterEntryDTO struct {
	Contractor   ContractorDTO `json:"contractor"`
	HasTimesheet bool          `json:"has_timesheet"`
}

type RosterResponse struct {
	Period string           `json:"period"`
	Items  []RosterEntryDTO `json:"items"`
}

type DropdownResponse struct {
	Items []ContractorDTO `json:"items"`
}
