package gormrepo

import (
	"context"

	"tilepuzzle/internal/adapter/repo/gorm/model"
	"tilepuzzle/internal/app/ports"
	"tilepuzzle/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PickupRepo struct {
	db *gorm.DB
}

func NewPickupRepo(db *gorm.DB) PickupRepo {
	return PickupRepo{db: db}
}

func (r PickupRepo) Append(ctx context.Context, record ports.PickupRecord) error {
	row := model.PickupEvent{
		SessionID:     record.SessionID,
		CollectableID: record.CollectableID,
		Kind:          string(record.Kind),
		X:             int32(record.X),
		Y:             int32(record.Y),
		PickedAt:      record.PickedAt,
	}
	res := getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "collectable_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r PickupRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]ports.PickupRecord, error) {
	rows := []model.PickupEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.PickupEvent{SessionID: sessionID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "picked_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.PickupRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.PickupRecord{
			SessionID:     row.SessionID,
			CollectableID: row.CollectableID,
			Kind:          world.EntityKind(row.Kind),
			X:             int(row.X),
			Y:             int(row.Y),
			PickedAt:      row.PickedAt,
		})
	}
	return out, nil
}
