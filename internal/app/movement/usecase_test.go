package movement

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"
)

var fixedNow = time.Unix(1700000000, 0).UTC()

func testCampaign(seed int64) campaign.Campaign {
	return campaign.Campaign{ID: 1, Name: "c1", Status: campaign.StatusActive, Seed: seed, MapSize: 5}
}

func newUseCase(chars *stubCharacterRepo, camps *stubCampaignRepo, moves *stubMovementRepo) UseCase {
	return UseCase{
		TxManager:  stubTxManager{},
		Characters: chars,
		Campaigns:  camps,
		Movements:  moves,
		Now:        func() time.Time { return fixedNow },
	}
}

func TestStep_SucceedsOntoWalkableCell(t *testing.T) {
	camp := testCampaign(42)
	from, ok := findCell(camp, func(p world.Point) bool {
		return walkable(camp, p) && walkable(camp, p.Add(1, 0))
	})
	if !ok {
		t.Fatalf("no walkable pair in fixture map")
	}
	chars := newCharacterRepo(linked(1, camp.ID, from))
	moves := &stubMovementRepo{}
	metrics := &stubMetrics{}
	uc := newUseCase(chars, newCampaignRepo(camp), moves)
	uc.Metrics = metrics

	out, err := uc.Step(context.Background(), StepRequest{CharacterID: 1, DX: 1, DY: 0})
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if !out.Success || out.From != from || out.To != from.Add(1, 0) {
		t.Fatalf("unexpected response: %+v", out)
	}
	if out.Events == nil || len(out.Events) != 0 {
		t.Fatalf("expected empty events, got %#v", out.Events)
	}
	if got := chars.location(1); got != from.Add(1, 0) {
		t.Fatalf("location not persisted: %+v", got)
	}
	if len(moves.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(moves.records))
	}
	rec := moves.records[0]
	if rec.From != from || rec.To != out.To || rec.Kind != campaign.MoveStep || !rec.CreatedAt.Equal(fixedNow) || len(rec.Events) != 0 {
		t.Fatalf("unexpected history record: %+v", rec)
	}
	if metrics.moves != 1 {
		t.Fatalf("expected move metric, got %+v", metrics)
	}
}

func TestStep_RejectsImpassableAndKeepsLocation(t *testing.T) {
	camp := testCampaign(0)
	from, ok := findCell(camp, func(p world.Point) bool {
		return walkable(camp, p) && !walkable(camp, p.Add(1, 0))
	})
	if !ok {
		t.Fatalf("no walkable cell next to impassable terrain in fixture map")
	}
	chars := newCharacterRepo(linked(1, camp.ID, from))
	moves := &stubMovementRepo{}
	metrics := &stubMetrics{}
	uc := newUseCase(chars, newCampaignRepo(camp), moves)
	uc.Metrics = metrics

	_, err := uc.Step(context.Background(), StepRequest{CharacterID: 1, DX: 1, DY: 0})
	if !errors.Is(err, campaign.ErrImpassable) {
		t.Fatalf("expected ErrImpassable, got %v", err)
	}
	if got := chars.location(1); got != from {
		t.Fatalf("location changed on rejection: %+v", got)
	}
	if chars.updates != 0 || len(moves.records) != 0 {
		t.Fatalf("rejected move wrote state: updates=%d history=%d", chars.updates, len(moves.records))
	}
	if metrics.rejections["impassable"] != 1 {
		t.Fatalf("expected impassable rejection metric, got %+v", metrics)
	}
}

func TestStep_RejectsOccupiedCell(t *testing.T) {
	var camp campaign.Campaign
	found := false
	for seed := int64(0); seed < 5000 && !found; seed++ {
		camp = testCampaign(seed)
		found = walkable(camp, world.Point{X: 6, Y: 5})
	}
	if !found {
		t.Fatalf("no seed with walkable (6,5)")
	}
	chars := newCharacterRepo(
		linked(1, camp.ID, world.Point{X: 5, Y: 5}),
		linked(2, camp.ID, world.Point{X: 6, Y: 5}),
	)
	moves := &stubMovementRepo{}
	uc := newUseCase(chars, newCampaignRepo(camp), moves)

	_, err := uc.Step(context.Background(), StepRequest{CharacterID: 1, DX: 1, DY: 0})
	if !errors.Is(err, campaign.ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
	if chars.location(1) != (world.Point{X: 5, Y: 5}) || len(moves.records) != 0 {
		t.Fatalf("rejected move wrote state")
	}
}

func TestStep_ZeroDeltaOntoOwnCellIsLegal(t *testing.T) {
	camp := testCampaign(42)
	at, ok := findCell(camp, func(p world.Point) bool { return walkable(camp, p) })
	if !ok {
		t.Fatalf("no walkable cell")
	}
	chars := newCharacterRepo(linked(1, camp.ID, at))
	uc := newUseCase(chars, newCampaignRepo(camp), &stubMovementRepo{})

	out, err := uc.Step(context.Background(), StepRequest{CharacterID: 1})
	if err != nil {
		t.Fatalf("zero step must not collide with self: %v", err)
	}
	if out.From != at || out.To != at {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestStep_RejectsInvalidDelta(t *testing.T) {
	chars := newCharacterRepo()
	uc := newUseCase(chars, newCampaignRepo(), &stubMovementRepo{})
	for _, req := range []StepRequest{
		{CharacterID: 1, DX: 2},
		{CharacterID: 1, DY: -2},
		{CharacterID: 0, DX: 1},
	} {
		if _, err := uc.Step(context.Background(), req); !errors.Is(err, campaign.ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", req, err)
		}
	}
}

func TestStep_ValidationChainErrors(t *testing.T) {
	camp := testCampaign(42)
	at, _ := findCell(camp, func(p world.Point) bool { return walkable(camp, p) })
	orphan := campaign.Character{ID: 2, Name: "orphan", Location: &at}
	dangling := linked(3, 99, at)
	unplaced := campaign.Character{ID: 4, Name: "unplaced", CampaignID: &camp.ID}

	cases := []struct {
		name string
		id   int64
		want error
	}{
		{"missing character", 404, ports.ErrNotFound},
		{"unlinked character", 2, campaign.ErrNotLinked},
		{"missing campaign", 3, ports.ErrNotFound},
		{"unplaced character", 4, campaign.ErrNotPlaced},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chars := newCharacterRepo(orphan, dangling, unplaced)
			moves := &stubMovementRepo{}
			uc := newUseCase(chars, newCampaignRepo(camp), moves)
			_, err := uc.Step(context.Background(), StepRequest{CharacterID: tc.id, DX: 1})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if chars.updates != 0 || len(moves.records) != 0 {
				t.Fatalf("failed validation wrote state")
			}
		})
	}
}

func TestStep_LocksCampaign(t *testing.T) {
	camp := testCampaign(42)
	at, _ := findCell(camp, func(p world.Point) bool { return walkable(camp, p) })
	camps := newCampaignRepo(camp)
	uc := newUseCase(newCharacterRepo(linked(1, camp.ID, at)), camps, &stubMovementRepo{})
	if _, err := uc.Step(context.Background(), StepRequest{CharacterID: 1}); err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if len(camps.locked) != 1 || camps.locked[0] != camp.ID {
		t.Fatalf("expected campaign row lock, got %+v", camps.locked)
	}
}

func TestTeleport_FarDestinationHasNoRangeLimit(t *testing.T) {
	far := world.Point{X: 1000, Y: 1000}
	var camp campaign.Campaign
	found := false
	for seed := int64(0); seed < 5000 && !found; seed++ {
		camp = testCampaign(seed)
		found = walkable(camp, far)
	}
	if !found {
		t.Fatalf("no seed with walkable (1000,1000)")
	}
	start, _ := findCell(camp, func(p world.Point) bool { return walkable(camp, p) })
	chars := newCharacterRepo(linked(1, camp.ID, start))
	moves := &stubMovementRepo{}
	uc := newUseCase(chars, newCampaignRepo(camp), moves)

	out, err := uc.Teleport(context.Background(), TeleportRequest{CharacterID: 1, To: far})
	if err != nil {
		t.Fatalf("Teleport error: %v", err)
	}
	if out.To != far || chars.location(1) != far {
		t.Fatalf("teleport not applied: %+v", out)
	}
	if len(moves.records) != 1 || moves.records[0].Kind != campaign.MoveTeleport {
		t.Fatalf("expected teleport history record, got %+v", moves.records)
	}
}

func TestTeleport_BoundedRejectsOutsideGrid(t *testing.T) {
	camp := testCampaign(42)
	start, _ := findCell(camp, func(p world.Point) bool { return walkable(camp, p) })
	chars := newCharacterRepo(linked(1, camp.ID, start))
	uc := newUseCase(chars, newCampaignRepo(camp), &stubMovementRepo{})
	uc.TeleportBounded = true

	_, err := uc.Teleport(context.Background(), TeleportRequest{CharacterID: 1, To: world.Point{X: 1000, Y: 1000}})
	if !errors.Is(err, campaign.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestTeleport_RejectsTerrainAndOccupancy(t *testing.T) {
	camp := testCampaign(0)
	start, _ := findCell(camp, func(p world.Point) bool { return walkable(camp, p) })
	other, _ := findCell(camp, func(p world.Point) bool { return walkable(camp, p) && p != start })
	blocked, _ := findCell(camp, func(p world.Point) bool { return !walkable(camp, p) })
	chars := newCharacterRepo(linked(1, camp.ID, start), linked(2, camp.ID, other))
	uc := newUseCase(chars, newCampaignRepo(camp), &stubMovementRepo{})

	if _, err := uc.Teleport(context.Background(), TeleportRequest{CharacterID: 1, To: blocked}); !errors.Is(err, campaign.ErrImpassable) {
		t.Fatalf("expected ErrImpassable, got %v", err)
	}
	if _, err := uc.Teleport(context.Background(), TeleportRequest{CharacterID: 1, To: other}); !errors.Is(err, campaign.ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
}

func TestTeleport_IgnoresCharactersFromOtherCampaigns(t *testing.T) {
	camp := testCampaign(42)
	start, _ := findCell(camp, func(p world.Point) bool { return walkable(camp, p) })
	dest, _ := findCell(camp, func(p world.Point) bool { return walkable(camp, p) && p != start })
	chars := newCharacterRepo(linked(1, camp.ID, start), linked(2, camp.ID+1, dest))
	uc := newUseCase(chars, newCampaignRepo(camp), &stubMovementRepo{})

	if _, err := uc.Teleport(context.Background(), TeleportRequest{CharacterID: 1, To: dest}); err != nil {
		t.Fatalf("character in another campaign must not block: %v", err)
	}
}

func TestMove_HistoryFailureIsNonFatalByDefault(t *testing.T) {
	camp := testCampaign(42)
	at, _ := findCell(camp, func(p world.Point) bool { return walkable(camp, p) })
	chars := newCharacterRepo(linked(1, camp.ID, at))
	moves := &stubMovementRepo{err: errors.New("disk full")}
	uc := newUseCase(chars, newCampaignRepo(camp), moves)

	out, err := uc.Step(context.Background(), StepRequest{CharacterID: 1})
	if err != nil {
		t.Fatalf("history failure must not fail the move: %v", err)
	}
	if !out.Success || chars.updates != 1 {
		t.Fatalf("move not committed: %+v updates=%d", out, chars.updates)
	}
}

func TestMove_StrictHistoryFailsTogether(t *testing.T) {
	camp := testCampaign(42)
	at, _ := findCell(camp, func(p world.Point) bool { return walkable(camp, p) })
	chars := newCharacterRepo(linked(1, camp.ID, at))
	moves := &stubMovementRepo{err: errors.New("disk full")}
	metrics := &stubMetrics{}
	uc := newUseCase(chars, newCampaignRepo(camp), moves)
	uc.StrictHistory = true
	uc.Metrics = metrics

	if _, err := uc.Step(context.Background(), StepRequest{CharacterID: 1}); err == nil {
		t.Fatalf("expected strict history failure to surface")
	}
	if metrics.failures != 1 {
		t.Fatalf("expected storage failure metric, got %+v", metrics)
	}
}

func TestMove_OccupancyInvariantHoldsOverRandomWalk(t *testing.T) {
	camp := testCampaign(42)
	cells := campaign.WalkableCells(camp.Layer())
	if len(cells) < 3 {
		t.Fatalf("fixture map too small")
	}
	chars := newCharacterRepo(
		linked(1, camp.ID, cells[0]),
		linked(2, camp.ID, cells[1]),
		linked(3, camp.ID, cells[2]),
	)
	uc := newUseCase(chars, newCampaignRepo(camp), &stubMovementRepo{})
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 500; i++ {
		id := int64(rng.IntN(3) + 1)
		var err error
		if rng.IntN(4) == 0 {
			to := cells[rng.IntN(len(cells))]
			_, err = uc.Teleport(context.Background(), TeleportRequest{CharacterID: id, To: to})
		} else {
			_, err = uc.Step(context.Background(), StepRequest{CharacterID: id, DX: rng.IntN(3) - 1, DY: rng.IntN(3) - 1})
		}
		if err != nil && !errors.Is(err, campaign.ErrImpassable) && !errors.Is(err, campaign.ErrOccupied) {
			t.Fatalf("unexpected error at step %d: %v", i, err)
		}
		seen := map[world.Point]int64{}
		for cid := int64(1); cid <= 3; cid++ {
			p := chars.location(cid)
			if prev, dup := seen[p]; dup {
				t.Fatalf("characters %d and %d share %+v after step %d", prev, cid, p, i)
			}
			seen[p] = cid
			if !walkable(camp, p) {
				t.Fatalf("character %d on non-walkable %+v", cid, p)
			}
		}
	}
}
