package archive

import (
	"slices"
	"time"

	"github.com/linskybing/issue-desk/internal/domain/issue"
	"gorm.io/datatypes"
)

// Source records where the terminal transition happened.
type Source string

const (
	SourceIssue   Source = "issue"
	SourceMeeting Source = "meeting"
)

// ClosedTicket is a snapshot of a ticket taken when it reached a terminal
// status. It is never linked back to the live ticket.
type ClosedTicket struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	IssueID     string       `json:"issue_id" gorm:"size:36;uniqueIndex:idx_closed_issue_status"`
	FinalStatus issue.Status `json:"final_status" gorm:"size:32;uniqueIndex:idx_closed_issue_status"`

	Title          string                                 `json:"title" gorm:"size:255"`
	Description    string                                 `json:"description" gorm:"type:text"`
	Priority       issue.Priority                         `json:"priority" gorm:"size:20"`
	Category       string                                 `json:"category" gorm:"size:100"`
	Tags           datatypes.JSONSlice[string]            `json:"tags"`
	Reporter       issue.Participant                      `json:"reporter" gorm:"embedded;embeddedPrefix:reporter_"`
	Assignee       issue.Participant                      `json:"assignee" gorm:"embedded;embeddedPrefix:assignee_"`
	CC             datatypes.JSONSlice[issue.Participant] `json:"cc"`
	ReadLevel      int                                    `json:"read_level" gorm:"default:0"`
	IssueCreatedAt time.Time                              `json:"issue_created_at"`

	Source          Source     `json:"source" gorm:"size:20;index"`
	ClosedReason    string     `json:"closed_reason,omitempty" gorm:"type:text"`
	ClosedDate      time.Time  `json:"closed_date"`
	MeetingAgendaID string     `json:"meeting_agenda_id,omitempty" gorm:"size:36"`
	MeetingDate     *time.Time `json:"meeting_date,omitempty"`
}

func (ClosedTicket) TableName() string {
	return "closed_tickets"
}

// Snapshot copies the archived fields of iss into a new entry.
func Snapshot(iss *issue.Issue, finalStatus issue.Status) *ClosedTicket {
	return &ClosedTicket{
		IssueID:        iss.ID,
		FinalStatus:    finalStatus,
		Title:          iss.Title,
		Description:    iss.Description,
		Priority:       iss.Priority,
		Category:       iss.Category,
		Tags:           slices.Clone(iss.Tags),
		Reporter:       iss.Reporter,
		Assignee:       iss.Assignee,
		CC:             slices.Clone(iss.CC),
		ReadLevel:      iss.ReadLevel,
		IssueCreatedAt: iss.CreatedAt,
	}
}

// IsParticipant reports whether userID was reporter, assignee or CC when the
// snapshot was taken.
func (c *ClosedTicket) IsParticipant(userID string) bool {
	if userID == "" {
		return false
	}
	if c.Reporter.ID == userID || c.Assignee.ID == userID {
		return true
	}
	for _, p := range c.CC {
		if p.ID == userID {
			return true
		}
	}
	return false
}

func (c *ClosedTicket) Clone() *ClosedTicket {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Tags = slices.Clone(c.Tags)
	cp.CC = slices.Clone(c.CC)
	if c.MeetingDate != nil {
		t := *c.MeetingDate
		cp.MeetingDate = &t
	}
	return &cp
}

// Filter narrows archive queries.
type Filter struct {
	IssueID string
	Source  Source
}
