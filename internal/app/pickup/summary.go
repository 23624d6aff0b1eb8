package pickup

import (
	"context"
	"errors"
	"strings"

	"tilepuzzle/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid pickup summary request")

type SummaryRequest struct {
	SessionID string
	Limit     int
}

type SummaryResponse struct {
	Score  ports.Score
	Recent []ports.PickupRecord
}

type SummaryUseCase struct {
	Pickups ports.PickupRepository
	Scores  ports.ScoreRepository
}

func (u SummaryUseCase) Execute(ctx context.Context, req SummaryRequest) (SummaryResponse, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return SummaryResponse{}, ErrInvalidRequest
	}
	score, err := u.Scores.GetBySession(ctx, req.SessionID)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			return SummaryResponse{}, err
		}
		score = ports.Score{SessionID: req.SessionID}
	}
	recent, err := u.Pickups.ListBySession(ctx, req.SessionID, req.Limit)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return SummaryResponse{}, err
	}
	return SummaryResponse{Score: score, Recent: recent}, nil
}
