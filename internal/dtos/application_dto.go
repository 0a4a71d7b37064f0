package dtos

// ApplicationCreateRequest starts tracking a job in the pipeline.
type ApplicationCreateRequest struct {
	JobID string `json:"jobId" binding:"required"`
}

// ApplicationUpdateRequest moves a card / edits notes. Nil fields are left
// untouched. Stage accepts any pipeline value; no transition graph is
// enforced (SAVED straight to OFFER is fine).
type ApplicationUpdateRequest struct {
	Stage         *string `json:"stage"`
	Notes         *string `json:"notes"`
	InterviewDate *string `json:"interviewDate"` // RFC 3339
	OfferDate     *string `json:"offerDate"`
	RejectedDate  *string `json:"rejectedDate"`
}
