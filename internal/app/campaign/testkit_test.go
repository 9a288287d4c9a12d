package campaign

import (
	"context"
	"sort"

	"campaignmap/internal/app/ports"
	campaigndomain "campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"
)

type stubTxManager struct {
	calls int
}

func (m *stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type stubCampaignRepo struct {
	items     []campaigndomain.Campaign
	createErr error
}

func (r *stubCampaignRepo) Create(_ context.Context, c campaigndomain.Campaign) (campaigndomain.Campaign, error) {
	if r.createErr != nil {
		return campaigndomain.Campaign{}, r.createErr
	}
	c.ID = int64(len(r.items) + 1)
	r.items = append(r.items, c)
	return c, nil
}

func (r *stubCampaignRepo) GetByID(_ context.Context, id int64) (campaigndomain.Campaign, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return campaigndomain.Campaign{}, ports.ErrNotFound
}

func (r *stubCampaignRepo) GetForUpdate(ctx context.Context, id int64) (campaigndomain.Campaign, error) {
	return r.GetByID(ctx, id)
}

func (r *stubCampaignRepo) FindActive(_ context.Context) (campaigndomain.Campaign, error) {
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].Status == campaigndomain.StatusActive {
			return r.items[i], nil
		}
	}
	return campaigndomain.Campaign{}, ports.ErrNotFound
}

func (r *stubCampaignRepo) List(_ context.Context) ([]campaigndomain.Campaign, error) {
	out := append([]campaigndomain.Campaign(nil), r.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubCampaignRepo) UpdateStatus(_ context.Context, id int64, status campaigndomain.Status) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			return nil
		}
	}
	return ports.ErrNotFound
}

type locationWrite struct {
	id         int64
	campaignID int64
	at         world.Point
}

type stubCharacterRepo struct {
	chars  []campaigndomain.Character
	writes []locationWrite
}

func (r *stubCharacterRepo) Create(_ context.Context, c campaigndomain.Character) (campaigndomain.Character, error) {
	c.ID = int64(len(r.chars) + 1)
	r.chars = append(r.chars, c)
	return c, nil
}

func (r *stubCharacterRepo) GetByID(_ context.Context, id int64) (campaigndomain.Character, error) {
	for _, c := range r.chars {
		if c.ID == id {
			return c, nil
		}
	}
	return campaigndomain.Character{}, ports.ErrNotFound
}

func (r *stubCharacterRepo) List(_ context.Context) ([]campaigndomain.Character, error) {
	return append([]campaigndomain.Character(nil), r.chars...), nil
}

func (r *stubCharacterRepo) ListByCampaign(_ context.Context, campaignID int64) ([]campaigndomain.Character, error) {
	out := []campaigndomain.Character{}
	for _, c := range r.chars {
		if c.InCampaign(campaignID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCharacterRepo) UpdateLocation(_ context.Context, id int64, campaignID int64, loc world.Point) error {
	r.writes = append(r.writes, locationWrite{id: id, campaignID: campaignID, at: loc})
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
