package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var ErrUnknownPriority = errors.New("unknown priority")

var priorityRank = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// Rank orders priorities by urgency; 0 for unknown values.
func (p Priority) Rank() int {
	return priorityRank[p]
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(raw)))
	if p.Rank() == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, raw)
	}
	return p, nil
}

// SuggestedCategories is the fixed suggestion set offered by the intake form.
// Category itself stays free text.
var SuggestedCategories = []string{"설비관리", "안전", "IT", "인사", "총무", "기타"}

// Participant identifies a user attached to a ticket.
type Participant struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Attachment is file metadata only; the bytes are never stored here.
type Attachment struct {
	Name     string `json:"name" yaml:"name"`
	Size     int64  `json:"size" yaml:"size"`
	MIMEType string `json:"mime_type" yaml:"mime_type"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Issue is a ticket tracked through the lifecycle.
type Issue struct {
	ID          string                           `json:"id" gorm:"primaryKey;size:36"`
	Title       string                           `json:"title" gorm:"size:255;not null"`
	Description string                           `json:"description" gorm:"type:text"`
	Category    string                           `json:"category" gorm:"size:100;index"`
	Tags        datatypes.JSONSlice[string]      `json:"tags"`
	Priority    Priority                         `json:"priority" gorm:"size:20;index"`
	Reporter    Participant                      `json:"reporter" gorm:"embedded;embeddedPrefix:reporter_"`
	Assignee    Participant                      `json:"assignee" gorm:"embedded;embeddedPrefix:assignee_"`
	CC          datatypes.JSONSlice[Participant] `json:"cc"`
	Status      Status                           `json:"status" gorm:"size:32;index"`
	ReadLevel   int                              `json:"read_level" gorm:"default:0"`

	RelatedIssues datatypes.JSONSlice[string]     `json:"related_issues"`
	Attachments   datatypes.JSONSlice[Attachment] `json:"attachments"`

	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime:false"`
	MeetingDate  *time.Time `json:"meeting_date,omitempty"`
	ResolvedDate *time.Time `json:"resolved_date,omitempty"`
}

func (Issue) TableName() string {
	return "issues"
}

// HasAssignee reports whether an assignee has been set.
func (i *Issue) HasAssignee() bool {
	return i.Assignee.ID != ""
}

// IsParticipant reports whether userID is the reporter, assignee or on the CC list.
func (i *Issue) IsParticipant(userID string) bool {
	if userID == "" {
		return false
	}
	if i.Reporter.ID == userID || i.Assignee.ID == userID {
		return true
	}
	for _, p := range i.CC {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy; list fields do not share backing arrays.
func (i *Issue) Clone() *Issue {
	if i == nil {
		return nil
	}
	c := *i
	c.Tags = slices.Clone(i.Tags)
	c.CC = slices.Clone(i.CC)
	c.RelatedIssues = slices.Clone(i.RelatedIssues)
	c.Attachments = slices.Clone(i.Attachments)
	if i.MeetingDate != nil {
		t := *i.MeetingDate
		c.MeetingDate = &t
	}
	if i.ResolvedDate != nil {
		t := *i.ResolvedDate
		c.ResolvedDate = &t
	}
	return &c
}

// DuplicateParticipant returns the first id that appears twice in ps.
func DuplicateParticipant(ps []Participant) (string, bool) {
	seen := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		if _, ok := seen[p.ID]; ok {
			return p.ID, true
		}
		seen[p.ID] = struct{}{}
	}
	return "", false
}
