package internalize

import "time"

// Record marks a ticket whose outcome was adopted into internal practice.
// Internalized tickets are no longer escalated to the meeting queue.
type Record struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	IssueID    string    `json:"issue_id" gorm:"size:36;uniqueIndex"`
	IssueTitle string    `json:"issue_title" gorm:"size:255"`
	Summary    string    `json:"summary" gorm:"type:text"`
	ActorID    string    `json:"actor_id" gorm:"size:64"`
	ActorName  string    `json:"actor_name" gorm:"size:100"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime:false"`
}

func (Record) TableName() string {
	return "internalizations"
}

type CreateRecordDTO struct {
	Summary string `json:"summary" binding:"required"`
}
