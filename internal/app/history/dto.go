package history

import "campaignmap/internal/domain/campaign"

type Request struct {
	CharacterID int64
	Limit       int
}

type Response struct {
	Movements []campaign.MovementRecord `json:"movements"`
}
