package meeting

type AddAgendaDTO struct {
	IssueID string `json:"issue_id" binding:"required"`
	Notes   string `json:"notes"`
}

type ResolveAgendaDTO struct {
	Outcome string `json:"outcome" binding:"required"`
	Notes   string `json:"notes"`
}

type AnnotateAgendaDTO struct {
	Notes string `json:"notes" binding:"required"`
}
