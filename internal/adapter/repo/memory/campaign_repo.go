package memory

import (
	"context"
	"sort"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
)

type CampaignRepo struct {
	store *Store
}

func NewCampaignRepo(store *Store) CampaignRepo {
	return CampaignRepo{store: store}
}

func (r CampaignRepo) Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	defer r.store.exclusive(ctx)()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextCampaignID++
	c.ID = r.store.nextCampaignID
	r.store.campaigns[c.ID] = c
	return c, nil
}

func (r CampaignRepo) GetByID(_ context.Context, id int64) (campaign.Campaign, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.campaigns[id]
	if !ok {
		return campaign.Campaign{}, ports.ErrNotFound
	}
	return c, nil
}

// GetForUpdate relies on TxManager holding the store-wide transaction lock.
func (r CampaignRepo) GetForUpdate(ctx context.Context, id int64) (campaign.Campaign, error) {
	return r.GetByID(ctx, id)
}

func (r CampaignRepo) FindActive(ctx context.Context) (campaign.Campaign, error) {
	items, err := r.List(ctx)
	if err != nil {
		return campaign.Campaign{}, err
	}
	for _, c := range items {
		if c.Status == campaign.StatusActive {
			return c, nil
		}
	}
	return campaign.Campaign{}, ports.ErrNotFound
}

// List orders newest first, ties broken by id.
func (r CampaignRepo) List(_ context.Context) ([]campaign.Campaign, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]campaign.Campaign, 0, len(r.store.campaigns))
	for _, c := range r.store.campaigns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r CampaignRepo) UpdateStatus(ctx context.Context, id int64, status campaign.Status) error {
	defer r.store.exclusive(ctx)()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.campaigns[id]
	if !ok {
		return ports.ErrNotFound
	}
	c.Status = status
	r.store.campaigns[id] = c
	return nil
}
