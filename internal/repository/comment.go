package repository

import (
	"context"

	"github.com/linskybing/issue-desk/internal/domain/comment"
	"gorm.io/gorm"
)

type CommentRepo interface {
	FindAll(ctx context.Context) ([]comment.Comment, error)
	Create(ctx context.Context, c *comment.Comment) error
	DeleteByIssueID(ctx context.Context, issueID string) error
	WithTx(tx *gorm.DB) CommentRepo
}

type DBCommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *DBCommentRepo {
	return &DBCommentRepo{
		db: db,
	}
}

func (r *DBCommentRepo) FindAll(ctx context.Context) ([]comment.Comment, error) {
	var comments []comment.Comment
	err := r.db.WithContext(ctx).Order("created_at asc").Find(&comments).Error
	return comments, err
}

func (r *DBCommentRepo) Create(ctx context.Context, c *comment.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *DBCommentRepo) DeleteByIssueID(ctx context.Context, issueID string) error {
	return r.db.WithContext(ctx).Where("issue_id = ?", issueID).Delete(&comment.Comment{}).Error
}

func (r *DBCommentRepo) WithTx(tx *gorm.DB) CommentRepo {
	if tx == nil {
		return r
	}
	return &DBCommentRepo{
		db: tx,
	}
}
