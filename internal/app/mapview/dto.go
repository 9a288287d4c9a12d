package mapview

import (
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"
)

type Marker struct {
	CharacterID int64             `json:"character_id"`
	Name        string            `json:"name"`
	Location    world.Point       `json:"location"`
	Terrain     world.TerrainKind `json:"terrain"`
}

type Response struct {
	Campaign *campaign.Campaign `json:"campaign,omitempty"`
	Map      world.Snapshot     `json:"map"`
	Markers  []Marker           `json:"markers"`
}
