package memory

import (
	"context"

	"campaignmap/internal/domain/campaign"
)

type MovementRepo struct {
	store *Store
}

func NewMovementRepo(store *Store) MovementRepo {
	return MovementRepo{store: store}
}

func (r MovementRepo) Append(ctx context.Context, rec campaign.MovementRecord) error {
	defer r.store.exclusive(ctx)()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextMovementID++
	rec.ID = r.store.nextMovementID
	if rec.Events == nil {
		rec.Events = []string{}
	}
	r.store.movements = append(r.store.movements, rec)
	return nil
}

// ListByCharacter returns newest first. A non-positive limit returns everything.
func (r MovementRepo) ListByCharacter(_ context.Context, characterID int64, limit int) ([]campaign.MovementRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []campaign.MovementRecord{}
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		rec := r.store.movements[i]
		if rec.CharacterID != characterID {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
