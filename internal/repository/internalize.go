package repository

import (
	"context"

	"github.com/linskybing/issue-desk/internal/domain/internalize"
	"gorm.io/gorm"
)

type InternalizationRepo interface {
	FindAll(ctx context.Context) ([]internalize.Record, error)
	Create(ctx context.Context, rec *internalize.Record) error
	DeleteByIssueID(ctx context.Context, issueID string) error
	WithTx(tx *gorm.DB) InternalizationRepo
}

type DBInternalizationRepo struct {
	db *gorm.DB
}

func NewInternalizationRepo(db *gorm.DB) *DBInternalizationRepo {
	return &DBInternalizationRepo{
		db: db,
	}
}

func (r *DBInternalizationRepo) FindAll(ctx context.Context) ([]internalize.Record, error) {
	var records []internalize.Record
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&records).Error
	return records, err
}

func (r *DBInternalizationRepo) Create(ctx context.Context, rec *internalize.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *DBInternalizationRepo) DeleteByIssueID(ctx context.Context, issueID string) error {
	return r.db.WithContext(ctx).Where("issue_id = ?", issueID).Delete(&internalize.Record{}).Error
}

func (r *DBInternalizationRepo) WithTx(tx *gorm.DB) InternalizationRepo {
	if tx == nil {
		return r
	}
	return &DBInternalizationRepo{
		db: tx,
	}
}
