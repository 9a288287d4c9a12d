package character

import "campaignmap/internal/domain/campaign"

type RegisterRequest struct {
	Name string
}

type RegisterResponse struct {
	ID int64 `json:"id"`
}

type BindResponse struct {
	Character campaign.Character `json:"character"`
	Tier      campaign.Tier      `json:"tier"`
}

type ListResponse struct {
	Characters []campaign.Character `json:"characters"`
}
