package campaign

import campaigndomain "campaignmap/internal/domain/campaign"

type CreateRequest struct {
	Name    string
	MapSize int
}

type CreateResponse struct {
	ID      int64 `json:"id"`
	Seed    int64 `json:"map_seed"`
	MapSize int   `json:"map_size"`
	Placed  int   `json:"placed"`
}

type UpdateStatusRequest struct {
	ID     int64
	Status string
}

type UpdateStatusResponse struct {
	Changes int `json:"changes"`
}

type ListResponse struct {
	Campaigns []campaigndomain.Campaign `json:"campaigns"`
}

type ActiveResponse struct {
	Campaign *campaigndomain.Campaign `json:"campaign"`
}
