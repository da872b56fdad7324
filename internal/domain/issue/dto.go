package issue

type CreateIssueDTO struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description" binding:"required"`
	Category    string        `json:"category" binding:"required"`
	Priority    Priority      `json:"priority" binding:"required"`
	Tags        []string      `json:"tags"`
	CC          []Participant `json:"cc"`
	ReadLevel   int           `json:"read_level"`
	Attachments []Attachment  `json:"attachments"`
}

// UpdateIssueDTO is a partial update; nil fields are left untouched.
// Status is deliberately absent: status only changes through transitions.
type UpdateIssueDTO struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	Priority    *Priority      `json:"priority"`
	Tags        *[]string      `json:"tags"`
	CC          *[]Participant `json:"cc"`
	ReadLevel   *int           `json:"read_level"`
	Attachments *[]Attachment  `json:"attachments"`
}

type AssignDTO struct {
	AssigneeID   string `json:"assignee_id" binding:"required"`
	AssigneeName string `json:"assignee_name" binding:"required"`
}

type TransitionDTO struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

type RelateDTO struct {
	RelatedID string `json:"related_id" binding:"required"`
}

// Filter narrows list queries. Zero values match everything.
type Filter struct {
	Status     *Status
	Category   string
	Priority   *Priority
	AssigneeID string
}
