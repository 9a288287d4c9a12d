package campaign

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"campaignmap/internal/app/ports"
	campaigndomain "campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"
)

func newUseCase(camps *stubCampaignRepo, chars *stubCharacterRepo) UseCase {
	return UseCase{
		TxManager:  &stubTxManager{},
		Campaigns:  camps,
		Characters: chars,
		Planner:    campaigndomain.NewPlanner(rand.New(rand.NewPCG(3, 4))),
		SeedFn:     func() int64 { return 4242 },
		Now:        func() time.Time { return time.Unix(1700000000, 0).UTC() },
	}
}

func TestCreate_DefaultsAndPersistsActiveCampaign(t *testing.T) {
	camps := &stubCampaignRepo{}
	uc := newUseCase(camps, &stubCharacterRepo{})

	out, err := uc.Create(context.Background(), CreateRequest{Name: "  Lost Mines  "})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if out.ID != 1 || out.Seed != 4242 || out.MapSize != world.DefaultMapSize {
		t.Fatalf("unexpected response: %+v", out)
	}
	if len(camps.items) != 1 {
		t.Fatalf("expected 1 campaign, got %d", len(camps.items))
	}
	got := camps.items[0]
	if got.Name != "Lost Mines" || got.Status != campaigndomain.StatusActive || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected persisted campaign: %+v", got)
	}
}

func TestCreate_ZeroCharactersWritesNoLocations(t *testing.T) {
	chars := &stubCharacterRepo{}
	uc := newUseCase(&stubCampaignRepo{}, chars)

	out, err := uc.Create(context.Background(), CreateRequest{Name: "empty"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if out.Placed != 0 || len(chars.writes) != 0 {
		t.Fatalf("expected no placement writes, got placed=%d writes=%d", out.Placed, len(chars.writes))
	}
}

func TestCreate_PlacesEveryCharacterOnDistinctWalkableCells(t *testing.T) {
	chars := &stubCharacterRepo{}
	for i := 0; i < 6; i++ {
		_, _ = chars.Create(context.Background(), campaigndomain.Character{Name: "pc"})
	}
	uc := newUseCase(&stubCampaignRepo{}, chars)

	out, err := uc.Create(context.Background(), CreateRequest{Name: "party", MapSize: 7})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if out.Placed != 6 || len(chars.writes) != 6 {
		t.Fatalf("expected one write per character, got placed=%d writes=%d", out.Placed, len(chars.writes))
	}
	seen := map[world.Point]bool{}
	for _, w := range chars.writes {
		if w.campaignID != out.ID {
			t.Fatalf("character %d bound to campaign %d, want %d", w.id, w.campaignID, out.ID)
		}
		if !world.WalkableAt(w.at.X, w.at.Y, out.Seed, out.MapSize) {
			t.Fatalf("character %d placed on non-walkable %+v", w.id, w.at)
		}
		if seen[w.at] {
			t.Fatalf("cell %+v assigned twice", w.at)
		}
		seen[w.at] = true
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	uc := newUseCase(&stubCampaignRepo{}, &stubCharacterRepo{})
	for _, req := range []CreateRequest{
		{Name: "   "},
		{Name: "x", MapSize: -1},
		{Name: "x", MapSize: campaigndomain.MaxMapSize + 1},
	} {
		if _, err := uc.Create(context.Background(), req); !errors.Is(err, campaigndomain.ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", req, err)
		}
	}
}

func TestCreate_DefaultSeedWithinSeedSpace(t *testing.T) {
	uc := newUseCase(&stubCampaignRepo{}, &stubCharacterRepo{})
	uc.SeedFn = nil
	for i := 0; i < 50; i++ {
		out, err := uc.Create(context.Background(), CreateRequest{Name: "s"})
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if out.Seed < 0 || out.Seed >= campaigndomain.SeedSpace {
			t.Fatalf("seed %d outside [0,%d)", out.Seed, campaigndomain.SeedSpace)
		}
	}
}

func TestCreate_StorageFailureSurfaces(t *testing.T) {
	camps := &stubCampaignRepo{createErr: errors.New("db down")}
	uc := newUseCase(camps, &stubCharacterRepo{})
	if _, err := uc.Create(context.Background(), CreateRequest{Name: "x"}); err == nil {
		t.Fatalf("expected storage error")
	}
}

func TestActive_ReturnsNewestActiveOrNil(t *testing.T) {
	camps := &stubCampaignRepo{}
	uc := newUseCase(camps, &stubCharacterRepo{})

	out, err := uc.Active(context.Background())
	if err != nil || out.Campaign != nil {
		t.Fatalf("expected nil campaign, got %+v err=%v", out, err)
	}

	_, _ = uc.Create(context.Background(), CreateRequest{Name: "first"})
	_, _ = uc.Create(context.Background(), CreateRequest{Name: "second"})
	out, err = uc.Active(context.Background())
	if err != nil || out.Campaign == nil || out.Campaign.Name != "second" {
		t.Fatalf("expected newest active campaign, got %+v err=%v", out, err)
	}
}

func TestUpdateStatusAndEnd(t *testing.T) {
	camps := &stubCampaignRepo{}
	uc := newUseCase(camps, &stubCharacterRepo{})
	created, _ := uc.Create(context.Background(), CreateRequest{Name: "c"})

	out, err := uc.UpdateStatus(context.Background(), UpdateStatusRequest{ID: created.ID, Status: "Paused"})
	if err != nil || out.Changes != 1 {
		t.Fatalf("UpdateStatus: out=%+v err=%v", out, err)
	}
	if camps.items[0].Status != campaigndomain.StatusPaused {
		t.Fatalf("status not persisted: %s", camps.items[0].Status)
	}

	if _, err := uc.UpdateStatus(context.Background(), UpdateStatusRequest{ID: created.ID, Status: "archived"}); !errors.Is(err, campaigndomain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.UpdateStatus(context.Background(), UpdateStatusRequest{ID: 99, Status: "active"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := uc.End(context.Background(), created.ID); err != nil {
		t.Fatalf("End error: %v", err)
	}
	if camps.items[0].Status != campaigndomain.StatusCompleted {
		t.Fatalf("expected completed, got %s", camps.items[0].Status)
	}
	active, _ := uc.Active(context.Background())
	if active.Campaign != nil {
		t.Fatalf("ended campaign still active")
	}
}

func TestList_NewestFirstNeverNil(t *testing.T) {
	uc := newUseCase(&stubCampaignRepo{}, &stubCharacterRepo{})
	out, err := uc.List(context.Background())
	if err != nil || out.Campaigns == nil {
		t.Fatalf("expected empty non-nil list, got %+v err=%v", out, err)
	}
	_, _ = uc.Create(context.Background(), CreateRequest{Name: "a"})
	_, _ = uc.Create(context.Background(), CreateRequest{Name: "b"})
	out, _ = uc.List(context.Background())
	if len(out.Campaigns) != 2 || out.Campaigns[0].Name != "b" {
		t.Fatalf("expected newest first, got %+v", out.Campaigns)
	}
}
