package ports

import (
	"context"

	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"
)

type CampaignRepository interface {
	Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error)
	GetByID(ctx context.Context, id int64) (campaign.Campaign, error)
	// GetForUpdate loads the campaign and holds it until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (campaign.Campaign, error)
	FindActive(ctx context.Context) (campaign.Campaign, error)
	List(ctx context.Context) ([]campaign.Campaign, error)
	UpdateStatus(ctx context.Context, id int64, status campaign.Status) error
}

type CharacterRepository interface {
	Create(ctx context.Context, c campaign.Character) (campaign.Character, error)
	GetByID(ctx context.Context, id int64) (campaign.Character, error)
	List(ctx context.Context) ([]campaign.Character, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]campaign.Character, error)
	UpdateLocation(ctx context.Context, id int64, campaignID int64, loc world.Point) error
}

type MovementRepository interface {
	Append(ctx context.Context, rec campaign.MovementRecord) error
	ListByCharacter(ctx context.Context, characterID int64, limit int) ([]campaign.MovementRecord, error)
}
