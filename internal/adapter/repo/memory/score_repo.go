package memory

import (
	"context"
	"time"

	"tilepuzzle/internal/app/ports"
	"tilepuzzle/internal/domain/world"
)

type ScoreRepo struct {
	store *Store
}

func NewScoreRepo(store *Store) ScoreRepo {
	return ScoreRepo{store: store}
}

func (r ScoreRepo) GetBySession(_ context.Context, sessionID string) (ports.Score, error) {
	score, ok := r.store.scores[sessionID]
	if !ok {
		return ports.Score{}, ports.ErrNotFound
	}
	return score, nil
}

func (r ScoreRepo) Add(_ context.Context, sessionID string, kind world.EntityKind, at time.Time) error {
	score := r.store.scores[sessionID]
	score.SessionID = sessionID
	switch kind {
	case world.EntityStar:
		score.Stars++
	case world.EntityItem:
		score.Items++
	default:
		return ports.ErrConflict
	}
	score.UpdatedAt = at
	r.store.scores[sessionID] = score
	return nil
}
