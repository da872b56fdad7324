package repository

import (
	"context"

	"github.com/linskybing/issue-desk/internal/domain/meeting"
	"gorm.io/gorm"
)

type AgendaRepo interface {
	FindAll(ctx context.Context) ([]meeting.Agenda, error)
	Save(ctx context.Context, a *meeting.Agenda) error
	DeleteByIssueID(ctx context.Context, issueID string) error
	WithTx(tx *gorm.DB) AgendaRepo
}

type DBAgendaRepo struct {
	db *gorm.DB
}

func NewAgendaRepo(db *gorm.DB) *DBAgendaRepo {
	return &DBAgendaRepo{
		db: db,
	}
}

func (r *DBAgendaRepo) FindAll(ctx context.Context) ([]meeting.Agenda, error) {
	var agendas []meeting.Agenda
	err := r.db.WithContext(ctx).Order("meeting_date desc").Find(&agendas).Error
	return agendas, err
}

func (r *DBAgendaRepo) Save(ctx context.Context, a *meeting.Agenda) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *DBAgendaRepo) DeleteByIssueID(ctx context.Context, issueID string) error {
	return r.db.WithContext(ctx).Where("issue_id = ?", issueID).Delete(&meeting.Agenda{}).Error
}

func (r *DBAgendaRepo) WithTx(tx *gorm.DB) AgendaRepo {
	if tx == nil {
		return r
	}
	return &DBAgendaRepo{
		db: tx,
	}
}
