package mapview

import (
	"context"
	"fmt"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"
)

type UseCase struct {
	Campaigns  ports.CampaignRepository
	Characters ports.CharacterRepository
	Maps       ports.MapProvider
}

// Render draws the visual grid of a campaign with a marker per placed
// character. Characters outside the visual grid still get a marker.
func (u UseCase) Render(ctx context.Context, campaignID int64) (Response, error) {
	if campaignID <= 0 {
		return Response{}, fmt.Errorf("%w: campaign id required", campaign.ErrInvalidInput)
	}
	c, err := u.Campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return Response{}, err
	}
	snap, err := u.Maps.Render(ctx, c.Layer(), world.VisualBounds(c.MapSize))
	if err != nil {
		return Response{}, fmt.Errorf("render map: %w", err)
	}
	chars, err := u.Characters.ListByCampaign(ctx, c.ID)
	if err != nil {
		return Response{}, err
	}
	markers := make([]Marker, 0, len(chars))
	for _, ch := range chars {
		if ch.Location == nil {
			continue
		}
		markers = append(markers, Marker{
			CharacterID: ch.ID,
			Name:        ch.Name,
			Location:    *ch.Location,
			Terrain:     world.Classify(ch.Location.X, ch.Location.Y, c.Seed, c.MapSize),
		})
	}
	return Response{Campaign: &c, Map: snap, Markers: markers}, nil
}

// Preview renders a map for a seed without any campaign behind it.
func (u UseCase) Preview(ctx context.Context, seed int64, mapSize int) (Response, error) {
	if mapSize == 0 {
		mapSize = world.DefaultMapSize
	}
	if mapSize < 0 || mapSize > campaign.MaxMapSize {
		return Response{}, fmt.Errorf("%w: map_size must be in 1..%d", campaign.ErrInvalidInput, campaign.MaxMapSize)
	}
	if seed < 0 {
		return Response{}, fmt.Errorf("%w: seed must be non-negative", campaign.ErrInvalidInput)
	}
	layer := world.Layer{Seed: seed, MapSize: mapSize}
	snap, err := u.Maps.Render(ctx, layer, world.VisualBounds(mapSize))
	if err != nil {
		return Response{}, fmt.Errorf("render map: %w", err)
	}
	return Response{Map: snap, Markers: []Marker{}}, nil
}
