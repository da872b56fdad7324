package repository

import (
	"context"

	"github.com/linskybing/issue-desk/internal/domain/archive"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArchiveRepo interface {
	FindAll(ctx context.Context) ([]archive.ClosedTicket, error)
	Create(ctx context.Context, entry *archive.ClosedTicket) error
	WithTx(tx *gorm.DB) ArchiveRepo
}

type DBArchiveRepo struct {
	db *gorm.DB
}

func NewArchiveRepo(db *gorm.DB) *DBArchiveRepo {
	return &DBArchiveRepo{
		db: db,
	}
}

func (r *DBArchiveRepo) FindAll(ctx context.Context) ([]archive.ClosedTicket, error) {
	var entries []archive.ClosedTicket
	err := r.db.WithContext(ctx).Order("closed_date desc").Find(&entries).Error
	return entries, err
}

// Create inserts entry. A second entry for the same (issue_id, final_status)
// is silently ignored so retried commits stay idempotent.
func (r *DBArchiveRepo) Create(ctx context.Context, entry *archive.ClosedTicket) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "issue_id"}, {Name: "final_status"}},
			DoNothing: true,
		}).
		Create(entry).Error
}

func (r *DBArchiveRepo) WithTx(tx *gorm.DB) ArchiveRepo {
	if tx == nil {
		return r
	}
	return &DBArchiveRepo{
		db: tx,
	}
}
