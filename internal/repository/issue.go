package repository

import (
	"context"

	"github.com/linskybing/issue-desk/internal/domain/issue"
	"gorm.io/gorm"
)

type IssueRepo interface {
	FindAll(ctx context.Context) ([]issue.Issue, error)
	Save(ctx context.Context, iss *issue.Issue) error
	Delete(ctx context.Context, id string) error
	WithTx(tx *gorm.DB) IssueRepo
}

type DBIssueRepo struct {
	db *gorm.DB
}

func NewIssueRepo(db *gorm.DB) *DBIssueRepo {
	return &DBIssueRepo{
		db: db,
	}
}

func (r *DBIssueRepo) FindAll(ctx context.Context) ([]issue.Issue, error) {
	var issues []issue.Issue
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&issues).Error
	return issues, err
}

func (r *DBIssueRepo) Save(ctx context.Context, iss *issue.Issue) error {
	return r.db.WithContext(ctx).Save(iss).Error
}

func (r *DBIssueRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&issue.Issue{}, "id = ?", id).Error
}

func (r *DBIssueRepo) WithTx(tx *gorm.DB) IssueRepo {
	if tx == nil {
		return r
	}
	return &DBIssueRepo{
		db: tx,
	}
}
