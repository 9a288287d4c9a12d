package character

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
)

type UseCase struct {
	TxManager  ports.TxManager
	Campaigns  ports.CampaignRepository
	Characters ports.CharacterRepository
	Planner    campaign.Planner
}

// Register creates a character with no campaign and no location.
func (u UseCase) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return RegisterResponse{}, fmt.Errorf("%w: character name required", campaign.ErrInvalidInput)
	}
	c, err := u.Characters.Create(ctx, campaign.Character{Name: name})
	if err != nil {
		return RegisterResponse{}, err
	}
	return RegisterResponse{ID: c.ID}, nil
}

func (u UseCase) Get(ctx context.Context, id int64) (campaign.Character, error) {
	if id <= 0 {
		return campaign.Character{}, fmt.Errorf("%w: character id required", campaign.ErrInvalidInput)
	}
	return u.Characters.GetByID(ctx, id)
}

func (u UseCase) ListByCampaign(ctx context.Context, campaignID int64) (ListResponse, error) {
	if campaignID <= 0 {
		return ListResponse{}, fmt.Errorf("%w: campaign id required", campaign.ErrInvalidInput)
	}
	items, err := u.Characters.ListByCampaign(ctx, campaignID)
	if err != nil {
		return ListResponse{}, err
	}
	if items == nil {
		items = []campaign.Character{}
	}
	return ListResponse{Characters: items}, nil
}

// Bind links a late-joining character to the active campaign and places it with
// the tiered single-character search against current occupancy.
func (u UseCase) Bind(ctx context.Context, id int64) (BindResponse, error) {
	if id <= 0 {
		return BindResponse{}, fmt.Errorf("%w: character id required", campaign.ErrInvalidInput)
	}
	var out BindResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		active, err := u.Campaigns.FindActive(txCtx)
		if errors.Is(err, ports.ErrNotFound) {
			return campaign.ErrNoActiveCampaign
		}
		if err != nil {
			return fmt.Errorf("load active campaign: %w", err)
		}
		camp, err := u.Campaigns.GetForUpdate(txCtx, active.ID)
		if err != nil {
			return fmt.Errorf("lock campaign %d: %w", active.ID, err)
		}
		ch, err := u.Characters.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("load character %d: %w", id, err)
		}
		if ch.InCampaign(camp.ID) && ch.Location != nil {
			return fmt.Errorf("%w: character %d already placed in campaign %d", ports.ErrConflict, id, camp.ID)
		}

		occupants, err := u.Characters.ListByCampaign(txCtx, camp.ID)
		if err != nil {
			return fmt.Errorf("load occupancy: %w", err)
		}
		placement := u.Planner.PlaceOne(camp.Layer(), campaign.NewOccupancy(occupants, id))
		if err := u.Characters.UpdateLocation(txCtx, id, camp.ID, placement.Point); err != nil {
			return fmt.Errorf("place character %d: %w", id, err)
		}
		cid, loc := camp.ID, placement.Point
		ch.CampaignID = &cid
		ch.Location = &loc
		out = BindResponse{Character: ch, Tier: placement.Tier}
		return nil
	})
	if err != nil {
		return BindResponse{}, err
	}
	return out, nil
}
