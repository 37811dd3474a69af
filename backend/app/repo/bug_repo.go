package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"bugtracker/backend/app/dashboard"
	"bugtracker/backend/app/models"

	"gorm.io/gorm"
)

type BugRepository struct{ db *gorm.DB }

func NewBugRepository(db *gorm.DB) *BugRepository { return &BugRepository{db: db} }

func (r *BugRepository) Create(ctx context.Context, b *models.Bug) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// FindByID returns (nil, nil) when no bug has that id.
func (r *BugRepository) FindByID(ctx context.Context, id uint) (*models.Bug, error) {
	var b models.Bug
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateFields writes the mutable fields of b. The reporter is never
// written. Concurrent writers race; the last one wins.
func (r *BugRepository) UpdateFields(ctx context.Context, b *models.Bug) error {
	b.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Model(&models.Bug{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"title":       b.Title,
			"description": b.Description,
			"severity":    b.Severity,
			"status":      b.Status,
			"updated_at":  b.UpdatedAt,
		}).Error
}

// List runs q and returns one page of bugs plus the count of all bugs
// matching the predicate set.
func (r *BugRepository) List(ctx context.Context, q dashboard.QuerySpec) ([]models.Bug, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Bug{})
	if q.ReporterID != nil {
		base = base.Where("reporter_id = ?", *q.ReporterID)
	}
	if q.Status != nil {
		base = base.Where("status = ?", *q.Status)
	}
	if q.Severity != nil {
		base = base.Where("severity = ?", *q.Severity)
	}
	if q.TitleContains != "" {
		// Folded by the database on both sides.
		base = base.Where("LOWER(title) LIKE LOWER(?) ESCAPE '!'", "%"+escapeLike(q.TitleContains)+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := q.Order
	if order == "" {
		order = dashboard.Order
	}
	limit := q.Limit
	if limit <= 0 {
		limit = dashboard.PageSize
	}
	var bugs []models.Bug
	if err := base.Session(&gorm.Session{}).
		Order(order).
		Offset(q.Skip).
		Limit(limit).
		Find(&bugs).Error; err != nil {
		return nil, 0, err
	}
	return bugs, total, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string { return likeEscaper.Replace(s) }
