package campaign

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"campaignmap/internal/app/ports"
	campaigndomain "campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("campaignmap/internal/app/campaign")

type UseCase struct {
	TxManager  ports.TxManager
	Campaigns  ports.CampaignRepository
	Characters ports.CharacterRepository
	Planner    campaigndomain.Planner
	// SeedFn draws a map seed in [0, SeedSpace). Defaults to math/rand.
	SeedFn func() int64
	Now    func() time.Time
}

// Create persists a new active campaign and places every existing character on
// its gameplay grid, one location write per character.
func (u UseCase) Create(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return CreateResponse{}, fmt.Errorf("%w: campaign name required", campaigndomain.ErrInvalidInput)
	}
	size := req.MapSize
	if size == 0 {
		size = world.DefaultMapSize
	}
	if size < 0 || size > campaigndomain.MaxMapSize {
		return CreateResponse{}, fmt.Errorf("%w: map_size must be in 1..%d", campaigndomain.ErrInvalidInput, campaigndomain.MaxMapSize)
	}

	ctx, span := tracer.Start(ctx, "campaign.create")
	defer span.End()

	now := u.now()
	c := campaigndomain.Campaign{
		Name:      name,
		Status:    campaigndomain.StatusActive,
		Seed:      u.seed(),
		MapSize:   size,
		CreatedAt: now,
		UpdatedAt: now,
	}

	placed := 0
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := u.Campaigns.Create(txCtx, c)
		if err != nil {
			return fmt.Errorf("create campaign: %w", err)
		}
		c = created
		chars, err := u.Characters.List(txCtx)
		if err != nil {
			return fmt.Errorf("list characters: %w", err)
		}
		for i, p := range u.Planner.PlaceAll(c.Layer(), len(chars)) {
			if err := u.Characters.UpdateLocation(txCtx, chars[i].ID, c.ID, p.Point); err != nil {
				return fmt.Errorf("place character %d: %w", chars[i].ID, err)
			}
			placed++
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return CreateResponse{}, err
	}
	span.SetAttributes(
		attribute.Int64("campaign.id", c.ID),
		attribute.Int64("campaign.seed", c.Seed),
		attribute.Int("campaign.placed", placed),
	)
	return CreateResponse{ID: c.ID, Seed: c.Seed, MapSize: c.MapSize, Placed: placed}, nil
}

// Active returns the most recently created active campaign, or nil when none is.
func (u UseCase) Active(ctx context.Context) (ActiveResponse, error) {
	c, err := u.Campaigns.FindActive(ctx)
	if errors.Is(err, ports.ErrNotFound) {
		return ActiveResponse{}, nil
	}
	if err != nil {
		return ActiveResponse{}, err
	}
	return ActiveResponse{Campaign: &c}, nil
}

func (u UseCase) Get(ctx context.Context, id int64) (campaigndomain.Campaign, error) {
	if id <= 0 {
		return campaigndomain.Campaign{}, fmt.Errorf("%w: campaign id required", campaigndomain.ErrInvalidInput)
	}
	return u.Campaigns.GetByID(ctx, id)
}

func (u UseCase) List(ctx context.Context) (ListResponse, error) {
	items, err := u.Campaigns.List(ctx)
	if err != nil {
		return ListResponse{}, err
	}
	if items == nil {
		items = []campaigndomain.Campaign{}
	}
	return ListResponse{Campaigns: items}, nil
}

func (u UseCase) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (UpdateStatusResponse, error) {
	if req.ID <= 0 {
		return UpdateStatusResponse{}, fmt.Errorf("%w: campaign id required", campaigndomain.ErrInvalidInput)
	}
	status, err := campaigndomain.ParseStatus(req.Status)
	if err != nil {
		return UpdateStatusResponse{}, fmt.Errorf("%w: status must be active, completed or paused", err)
	}
	if err := u.Campaigns.UpdateStatus(ctx, req.ID, status); err != nil {
		return UpdateStatusResponse{}, err
	}
	return UpdateStatusResponse{Changes: 1}, nil
}

// End marks the campaign completed. Characters and history are kept.
func (u UseCase) End(ctx context.Context, id int64) error {
	_, err := u.UpdateStatus(ctx, UpdateStatusRequest{ID: id, Status: string(campaigndomain.StatusCompleted)})
	return err
}

func (u UseCase) seed() int64 {
	if u.SeedFn != nil {
		return u.SeedFn()
	}
	return rand.Int64N(campaigndomain.SeedSpace)
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now().UTC()
}
