package comment

import "time"

// Comment is an opinion posted on a ticket by any participant.
type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	IssueID    string    `json:"issue_id" gorm:"size:36;index"`
	AuthorID   string    `json:"author_id" gorm:"size:64"`
	AuthorName string    `json:"author_name" gorm:"size:100"`
	Content    string    `json:"content" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime:false"`
}

func (Comment) TableName() string {
	return "issue_comments"
}

type CreateCommentDTO struct {
	Content string `json:"content" binding:"required"`
}
