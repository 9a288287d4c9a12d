package movement

import (
	"context"
	"sort"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubCharacterRepo struct {
	byID    map[int64]campaign.Character
	updates int
}

func newCharacterRepo(chars ...campaign.Character) *stubCharacterRepo {
	r := &stubCharacterRepo{byID: map[int64]campaign.Character{}}
	for _, c := range chars {
		r.byID[c.ID] = c
	}
	return r
}

func (r *stubCharacterRepo) Create(_ context.Context, c campaign.Character) (campaign.Character, error) {
	c.ID = int64(len(r.byID) + 1)
	r.byID[c.ID] = c
	return c, nil
}

func (r *stubCharacterRepo) GetByID(_ context.Context, id int64) (campaign.Character, error) {
	c, ok := r.byID[id]
	if !ok {
		return campaign.Character{}, ports.ErrNotFound
	}
	return c, nil
}

func (r *stubCharacterRepo) List(_ context.Context) ([]campaign.Character, error) {
	out := make([]campaign.Character, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCharacterRepo) ListByCampaign(ctx context.Context, campaignID int64) ([]campaign.Character, error) {
	all, _ := r.List(ctx)
	out := []campaign.Character{}
	for _, c := range all {
		if c.InCampaign(campaignID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCharacterRepo) UpdateLocation(_ context.Context, id int64, campaignID int64, loc world.Point) error {
	c, ok := r.byID[id]
	if !ok {
		return ports.ErrNotFound
	}
	cid := campaignID
	p := loc
	c.CampaignID = &cid
	c.Location = &p
	r.byID[id] = c
	r.updates++
	return nil
}

func (r *stubCharacterRepo) location(id int64) world.Point {
	c := r.byID[id]
	if c.Location == nil {
		return world.Point{X: -9999, Y: -9999}
	}
	return *c.Location
}

type stubCampaignRepo struct {
	byID   map[int64]campaign.Campaign
	locked []int64
}

func newCampaignRepo(camps ...campaign.Campaign) *stubCampaignRepo {
	r := &stubCampaignRepo{byID: map[int64]campaign.Campaign{}}
	for _, c := range camps {
		r.byID[c.ID] = c
	}
	return r
}

func (r *stubCampaignRepo) Create(_ context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	c.ID = int64(len(r.byID) + 1)
	r.byID[c.ID] = c
	return c, nil
}

func (r *stubCampaignRepo) GetByID(_ context.Context, id int64) (campaign.Campaign, error) {
	c, ok := r.byID[id]
	if !ok {
		return campaign.Campaign{}, ports.ErrNotFound
	}
	return c, nil
}

func (r *stubCampaignRepo) GetForUpdate(ctx context.Context, id int64) (campaign.Campaign, error) {
	r.locked = append(r.locked, id)
	return r.GetByID(ctx, id)
}

func (r *stubCampaignRepo) FindActive(_ context.Context) (campaign.Campaign, error) {
	return campaign.Campaign{}, ports.ErrNotFound
}

func (r *stubCampaignRepo) List(_ context.Context) ([]campaign.Campaign, error) {
	return nil, nil
}

func (r *stubCampaignRepo) UpdateStatus(_ context.Context, _ int64, _ campaign.Status) error {
	return nil
}

type stubMovementRepo struct {
	records []campaign.MovementRecord
	err     error
}

func (r *stubMovementRepo) Append(_ context.Context, rec campaign.MovementRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *stubMovementRepo) ListByCharacter(_ context.Context, characterID int64, _ int) ([]campaign.MovementRecord, error) {
	out := []campaign.MovementRecord{}
	for _, rec := range r.records {
		if rec.CharacterID == characterID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type stubMetrics struct {
	moves      int
	rejections map[string]int
	failures   int
}

func (m *stubMetrics) RecordMove(_ campaign.MoveKind) {
	m.moves++
}

func (m *stubMetrics) RecordRejection(_ campaign.MoveKind, reason string) {
	if m.rejections == nil {
		m.rejections = map[string]int{}
	}
	m.rejections[reason]++
}

func (m *stubMetrics) RecordFailure(_ campaign.MoveKind) {
	m.failures++
}

func linked(id int64, campaignID int64, at world.Point) campaign.Character {
	cid := campaignID
	p := at
	return campaign.Character{ID: id, Name: "c", CampaignID: &cid, Location: &p}
}

func walkable(c campaign.Campaign, p world.Point) bool {
	return world.WalkableAt(p.X, p.Y, c.Seed, c.MapSize)
}

// findCell scans the gameplay grid of c for a cell satisfying pred.
func findCell(c campaign.Campaign, pred func(p world.Point) bool) (world.Point, bool) {
	var found world.Point
	ok := false
	world.GameplayBounds(c.MapSize).Each(func(p world.Point) bool {
		if pred(p) {
			found, ok = p, true
			return false
		}
		return true
	})
	return found, ok
}
