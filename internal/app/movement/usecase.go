package movement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("campaignmap/internal/app/movement")

type UseCase struct {
	TxManager  ports.TxManager
	Characters ports.CharacterRepository
	Campaigns  ports.CampaignRepository
	Movements  ports.MovementRepository
	Metrics    ports.MovementMetrics
	// TeleportBounded limits teleports to the gameplay grid. Off by default:
	// GM repositioning has no range limit.
	TeleportBounded bool
	// StrictHistory appends the history record inside the move transaction.
	// Otherwise an append failure is logged and the move still stands.
	StrictHistory bool
	Now           func() time.Time
}

type targetFn func(from world.Point) (world.Point, error)

func (u UseCase) Step(ctx context.Context, req StepRequest) (Response, error) {
	if req.CharacterID <= 0 {
		return Response{}, fmt.Errorf("%w: character id required", campaign.ErrInvalidInput)
	}
	if err := campaign.ValidateStepDelta(req.DX, req.DY); err != nil {
		return Response{}, err
	}
	return u.move(ctx, campaign.MoveStep, req.CharacterID, func(from world.Point) (world.Point, error) {
		return campaign.StepTarget(from, req.DX, req.DY)
	})
}

func (u UseCase) Teleport(ctx context.Context, req TeleportRequest) (Response, error) {
	if req.CharacterID <= 0 {
		return Response{}, fmt.Errorf("%w: character id required", campaign.ErrInvalidInput)
	}
	return u.move(ctx, campaign.MoveTeleport, req.CharacterID, func(world.Point) (world.Point, error) {
		return req.To, nil
	})
}

func (u UseCase) move(ctx context.Context, kind campaign.MoveKind, characterID int64, target targetFn) (Response, error) {
	ctx, span := tracer.Start(ctx, "movement."+string(kind), trace.WithAttributes(
		attribute.Int64("character.id", characterID),
	))
	defer span.End()

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var rec campaign.MovementRecord
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		ch, err := u.Characters.GetByID(txCtx, characterID)
		if err != nil {
			return fmt.Errorf("load character %d: %w", characterID, err)
		}
		if !ch.Linked() {
			return campaign.ErrNotLinked
		}
		camp, err := u.Campaigns.GetForUpdate(txCtx, *ch.CampaignID)
		if err != nil {
			return fmt.Errorf("load campaign %d: %w", *ch.CampaignID, err)
		}
		// The campaign lock serializes moves; re-read so the origin is current.
		ch, err = u.Characters.GetByID(txCtx, characterID)
		if err != nil {
			return fmt.Errorf("reload character %d: %w", characterID, err)
		}
		if ch.Location == nil {
			return campaign.ErrNotPlaced
		}
		from := *ch.Location
		to, err := target(from)
		if err != nil {
			return err
		}

		occupants, err := u.Characters.ListByCampaign(txCtx, camp.ID)
		if err != nil {
			return fmt.Errorf("load occupancy: %w", err)
		}
		occ := campaign.NewOccupancy(occupants, ch.ID)
		if err := campaign.ValidateDestination(kind, to, campaign.RulesFor(camp, u.TeleportBounded), occ); err != nil {
			return err
		}

		if err := u.Characters.UpdateLocation(txCtx, ch.ID, camp.ID, to); err != nil {
			return fmt.Errorf("update location: %w", err)
		}
		rec = campaign.NewMovementRecord(ch.ID, camp.ID, kind, from, to, nowFn())
		if u.StrictHistory {
			if err := u.Movements.Append(txCtx, rec); err != nil {
				return fmt.Errorf("append movement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		u.recordError(kind, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Response{}, err
	}

	if !u.StrictHistory {
		if err := u.Movements.Append(ctx, rec); err != nil {
			hlog.CtxWarnf(ctx, "movement history append failed: character=%d from=%v to=%v err=%v", characterID, rec.From, rec.To, err)
		}
	}
	if u.Metrics != nil {
		u.Metrics.RecordMove(kind)
	}
	span.SetAttributes(
		attribute.Int("move.to.x", rec.To.X),
		attribute.Int("move.to.y", rec.To.Y),
	)
	return Response{Success: true, From: rec.From, To: rec.To, Events: rec.Events}, nil
}

func (u UseCase) recordError(kind campaign.MoveKind, err error) {
	if u.Metrics == nil {
		return
	}
	if reason, ok := rejectionReason(err); ok {
		u.Metrics.RecordRejection(kind, reason)
		return
	}
	u.Metrics.RecordFailure(kind)
}

func rejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, campaign.ErrImpassable):
		return "impassable", true
	case errors.Is(err, campaign.ErrOccupied):
		return "occupied", true
	case errors.Is(err, campaign.ErrOutOfBounds):
		return "out_of_bounds", true
	case errors.Is(err, campaign.ErrInvalidInput):
		return "invalid_input", true
	case errors.Is(err, campaign.ErrNotLinked), errors.Is(err, campaign.ErrNotPlaced):
		return "invalid_state", true
	case errors.Is(err, ports.ErrNotFound):
		return "not_found", true
	default:
		return "", false
	}
}
