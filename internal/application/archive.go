package application

import (
	"context"
	"fmt"

	"github.com/linskybing/issue-desk/internal/domain/archive"
	"github.com/linskybing/issue-desk/internal/domain/issue"
)

// ArchiveService is the read side of the closed-ticket ledger plus an
// explicit append for callers that archive outside a transition.
type ArchiveService struct {
	session *Session
}

func NewArchiveService(session *Session) *ArchiveService {
	return &ArchiveService{session: session}
}

// Append snapshots the ticket under finalStatus. It reports false when an
// entry for the same ticket and status already exists.
func (s *ArchiveService) Append(ctx context.Context, issueID string, finalStatus issue.Status, reason string, src archive.Source, agendaID string) (*archive.ClosedTicket, bool, error) {
	if !finalStatus.Valid() || !finalStatus.IsTerminal() {
		return nil, false, fmt.Errorf("%w: %q is not a terminal status", ErrInvalidInput, finalStatus)
	}
	var (
		out     *archive.ClosedTicket
		created bool
	)
	err := s.session.commit(ctx, "archive.append", func(tx *txn) error {
		iss, err := tx.st.issue(issueID)
		if err != nil {
			return err
		}
		prov := provenance{source: src, agendaID: agendaID}
		if agendaID != "" {
			a := tx.st.agenda(agendaID)
			if a == nil {
				return fmt.Errorf("%w: %s", ErrAgendaNotFound, agendaID)
			}
			prov.meetingDate = &a.MeetingDate
		}
		var e *archive.ClosedTicket
		e, created = tx.archive(iss, finalStatus, reason, prov)
		out = e.Clone()
		if !created {
			return issue.ErrNoChange
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

// List returns ledger entries most recent first.
func (s *ArchiveService) List(ctx context.Context, filter archive.Filter) []archive.ClosedTicket {
	var out []archive.ClosedTicket
	s.session.read(func(st *state) {
		out = make([]archive.ClosedTicket, 0, len(st.archive))
		for _, e := range st.archive {
			if filter.IssueID != "" && e.IssueID != filter.IssueID {
				continue
			}
			if filter.Source != "" && e.Source != filter.Source {
				continue
			}
			out = append(out, *e.Clone())
		}
	})
	return out
}

func (s *ArchiveService) Get(ctx context.Context, id string) (*archive.ClosedTicket, error) {
	var out *archive.ClosedTicket
	s.session.read(func(st *state) {
		for _, e := range st.archive {
			if e.ID == id {
				out = e.Clone()
				return
			}
		}
	})
	if out == nil {
		return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, id)
	}
	return out, nil
}
