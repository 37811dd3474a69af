package services

import (
	"context"
	"fmt"
	"strings"

	"bugtracker/backend/app/apperr"
	"bugtracker/backend/app/dashboard"
	"bugtracker/backend/app/models"
	"bugtracker/backend/app/policy"
	"bugtracker/backend/app/repo"
	"bugtracker/backend/app/session"
)

type BugInput struct {
	Title       string
	Description string
	Severity    string
	Status      string
}

type BugPage struct {
	Bugs  []models.Bug
	Query dashboard.QuerySpec
	Total int64
	Pages int
}

type BugService struct{ bugs *repo.BugRepository }

func NewBugService(bugs *repo.BugRepository) *BugService { return &BugService{bugs: bugs} }

// Create files a bug owned by the caller. Omitted severity and status
// default to Low and Open.
func (s *BugService) Create(ctx context.Context, sc session.Context, in BugInput) (*models.Bug, error) {
	b := &models.Bug{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Severity:    models.SeverityLow,
		Status:      models.StatusOpen,
		ReporterID:  sc.UserID,
	}
	if err := applyInput(b, in); err != nil {
		return nil, fmt.Errorf("create bug: %w", err)
	}
	if err := s.bugs.Create(ctx, b); err != nil {
		return nil, storeErr("create bug", err)
	}
	return b, nil
}

// Get loads a bug for action. A missing bug is reported as
// apperr.ErrNotFound before any permission check.
func (s *BugService) Get(ctx context.Context, sc session.Context, id uint, action policy.Action) (*models.Bug, error) {
	b, err := s.bugs.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find bug", err)
	}
	if b == nil {
		return nil, fmt.Errorf("bug %d: %w", id, apperr.ErrNotFound)
	}
	if err := policy.AuthorizeOrDeny(sc, b, action); err != nil {
		return nil, err
	}
	return b, nil
}

// Update rewrites title, description, severity and status. Empty
// severity or status keep their current values.
func (s *BugService) Update(ctx context.Context, sc session.Context, id uint, in BugInput) (*models.Bug, error) {
	b, err := s.Get(ctx, sc, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	b.Title = strings.TrimSpace(in.Title)
	b.Description = in.Description
	if err := applyInput(b, in); err != nil {
		return nil, fmt.Errorf("update bug %d: %w", id, err)
	}
	if err := s.bugs.UpdateFields(ctx, b); err != nil {
		return nil, storeErr("update bug", err)
	}
	return b, nil
}

func (s *BugService) List(ctx context.Context, sc session.Context, p dashboard.Params) (*BugPage, error) {
	q := dashboard.Build(sc, p)
	bugs, total, err := s.bugs.List(ctx, q)
	if err != nil {
		return nil, storeErr("list bugs", err)
	}
	return &BugPage{Bugs: bugs, Query: q, Total: total, Pages: dashboard.Pages(total)}, nil
}

func applyInput(b *models.Bug, in BugInput) error {
	if b.Title == "" {
		return apperr.Invalid("Title", "is required")
	}
	if in.Severity != "" {
		sev, err := models.ParseSeverity(in.Severity)
		if err != nil {
			return apperr.Invalid("Severity", "must be Low, Medium or High")
		}
		b.Severity = sev
	}
	if in.Status != "" {
		st, err := models.ParseStatus(in.Status)
		if err != nil {
			return apperr.Invalid("Status", "must be Open, In Progress or Closed")
		}
		b.Status = st
	}
	return nil
}
