package character

import (
	"context"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubCampaignRepo struct {
	active *campaign.Campaign
	locked int
}

func (r *stubCampaignRepo) Create(_ context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	c.ID = 1
	r.active = &c
	return c, nil
}

func (r *stubCampaignRepo) GetByID(_ context.Context, id int64) (campaign.Campaign, error) {
	if r.active == nil || r.active.ID != id {
		return campaign.Campaign{}, ports.ErrNotFound
	}
	return *r.active, nil
}

func (r *stubCampaignRepo) GetForUpdate(ctx context.Context, id int64) (campaign.Campaign, error) {
	r.locked++
	return r.GetByID(ctx, id)
}

func (r *stubCampaignRepo) FindActive(_ context.Context) (campaign.Campaign, error) {
	if r.active == nil || r.active.Status != campaign.StatusActive {
		return campaign.Campaign{}, ports.ErrNotFound
	}
	return *r.active, nil
}

func (r *stubCampaignRepo) List(_ context.Context) ([]campaign.Campaign, error) {
	if r.active == nil {
		return nil, nil
	}
	return []campaign.Campaign{*r.active}, nil
}

func (r *stubCampaignRepo) UpdateStatus(_ context.Context, id int64, status campaign.Status) error {
	if r.active == nil || r.active.ID != id {
		return ports.ErrNotFound
	}
	r.active.Status = status
	return nil
}

type stubCharacterRepo struct {
	chars []campaign.Character
}

func (r *stubCharacterRepo) Create(_ context.Context, c campaign.Character) (campaign.Character, error) {
	c.ID = int64(len(r.chars) + 1)
	r.chars = append(r.chars, c)
	return c, nil
}

func (r *stubCharacterRepo) GetByID(_ context.Context, id int64) (campaign.Character, error) {
	for _, c := range r.chars {
		if c.ID == id {
			return c, nil
		}
	}
	return campaign.Character{}, ports.ErrNotFound
}

func (r *stubCharacterRepo) List(_ context.Context) ([]campaign.Character, error) {
	return append([]campaign.Character(nil), r.chars...), nil
}

func (r *stubCharacterRepo) ListByCampaign(_ context.Context, campaignID int64) ([]campaign.Character, error) {
	var out []campaign.Character
	for _, c := range r.chars {
		if c.InCampaign(campaignID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCharacterRepo) UpdateLocation(_ context.Context, id int64, campaignID int64, loc world.Point) error {
	for i := range r.chars {
		if r.chars[i].ID == id {
			cid, p := campaignID, loc
			r.chars[i].CampaignID = &cid
			r.chars[i].Location = &p
			return nil
		}
	}
	return ports.ErrNotFound
}
