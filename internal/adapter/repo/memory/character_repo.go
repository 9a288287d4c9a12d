package memory

import (
	"context"
	"sort"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"
)

type CharacterRepo struct {
	store *Store
}

func NewCharacterRepo(store *Store) CharacterRepo {
	return CharacterRepo{store: store}
}

func (r CharacterRepo) Create(ctx context.Context, c campaign.Character) (campaign.Character, error) {
	defer r.store.exclusive(ctx)()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextCharacterID++
	c.ID = r.store.nextCharacterID
	r.store.characters[c.ID] = cloneCharacter(c)
	return cloneCharacter(c), nil
}

func (r CharacterRepo) GetByID(_ context.Context, id int64) (campaign.Character, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.characters[id]
	if !ok {
		return campaign.Character{}, ports.ErrNotFound
	}
	return cloneCharacter(c), nil
}

func (r CharacterRepo) List(_ context.Context) ([]campaign.Character, error) {
	return r.filter(func(campaign.Character) bool { return true }), nil
}

func (r CharacterRepo) ListByCampaign(_ context.Context, campaignID int64) ([]campaign.Character, error) {
	return r.filter(func(c campaign.Character) bool { return c.InCampaign(campaignID) }), nil
}

func (r CharacterRepo) UpdateLocation(ctx context.Context, id int64, campaignID int64, loc world.Point) error {
	defer r.store.exclusive(ctx)()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.characters[id]
	if !ok {
		return ports.ErrNotFound
	}
	c.CampaignID = &campaignID
	c.Location = &loc
	r.store.characters[id] = c
	return nil
}

func (r CharacterRepo) filter(keep func(campaign.Character) bool) []campaign.Character {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []campaign.Character{}
	for _, c := range r.store.characters {
		if keep(c) {
			out = append(out, cloneCharacter(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
