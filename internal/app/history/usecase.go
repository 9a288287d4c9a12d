package history

import (
	"context"
	"fmt"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type UseCase struct {
	Characters ports.CharacterRepository
	Movements  ports.MovementRepository
}

// List returns a character's movements newest first.
func (u UseCase) List(ctx context.Context, req Request) (Response, error) {
	if req.CharacterID <= 0 {
		return Response{}, fmt.Errorf("%w: character id required", campaign.ErrInvalidInput)
	}
	limit := req.Limit
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if _, err := u.Characters.GetByID(ctx, req.CharacterID); err != nil {
		return Response{}, err
	}
	items, err := u.Movements.ListByCharacter(ctx, req.CharacterID, limit)
	if err != nil {
		return Response{}, err
	}
	if items == nil {
		items = []campaign.MovementRecord{}
	}
	return Response{Movements: items}, nil
}
