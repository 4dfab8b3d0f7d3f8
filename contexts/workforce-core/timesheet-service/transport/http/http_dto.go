package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitTimesheetRequest struct {
	Period     string          `json:"period"`
	HoursByDay map[int]float64 `json:"hours_by_day"`
	ImageRefs  []string        `json:"image_refs,omitempty"`
	// Base64-encoded attachment bytes stored inline with the submission,
	// for clients that skip the separate upload endpoint.
	Attachments [][]byte `json:"attachments,omitempty"`
}

type TimesheetDTO struct {
	TimesheetID      string          `json:"timesheet_id"`
	OrgID            string          `json:"org_id"`
	ContractorID     string          `json:"contractor_id"`
	Period           string          `json:"period"`
	HoursByDay       map[int]float64 `json:"hours_by_day"`
	ImageURLs        []string        `json:"image_urls,omitempty"`
	RateAtSubmission float64         `json:"rate_at_submission"`
	TotalHours       float64         `json:"total_hours"`
	EstimatedPay     float64         `json:"estimated_pay"`
	SubmittedAt      string          `json:"submitted_at"`
}

type SubmitTimesheetResponse struct {
	Timesheet TimesheetDTO `json:"timesheet"`
}

type ListTimesheetsResponse struct {
	Items []TimesheetDTO `json:"items"`
}

type UploadAttachmentResponse struct {
	URL string `json:"url"`
}
