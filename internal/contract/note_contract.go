package contract

const MaxNoteBodyBytes = 1_000_000

type NoteRequest struct {
	Body string `json:"body" validate:"max=1000000"`
}

type NoteResponse struct {
	CompanyID string `json:"company_id"`
	Body      string `json:"body"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
