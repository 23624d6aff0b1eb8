package gormrepo

import (
	"context"
	"errors"
	"time"

	"tilepuzzle/internal/adapter/repo/gorm/model"
	"tilepuzzle/internal/app/ports"
	"tilepuzzle/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepo struct {
	db *gorm.DB
}

func NewScoreRepo(db *gorm.DB) ScoreRepo {
	return ScoreRepo{db: db}
}

func (r ScoreRepo) GetBySession(ctx context.Context, sessionID string) (ports.Score, error) {
	var m model.SessionScore
	if err := getDBFromCtx(ctx, r.db).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Score{}, ports.ErrNotFound
		}
		return ports.Score{}, err
	}
	return ports.Score{
		SessionID: m.SessionID,
		Stars:     int(m.Stars),
		Items:     int(m.Items),
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r ScoreRepo) Add(ctx context.Context, sessionID string, kind world.EntityKind, at time.Time) error {
	row := model.SessionScore{SessionID: sessionID, UpdatedAt: at}
	var column string
	switch kind {
	case world.EntityStar:
		row.Stars, column = 1, "stars"
	case world.EntityItem:
		row.Items, column = 1, "items"
	default:
		return ports.ErrConflict
	}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				column:       gorm.Expr("session_scores." + column + " + 1"),
				"updated_at": at,
			}),
		}).
		Create(&row).Error
}
