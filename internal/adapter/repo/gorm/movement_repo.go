package gormrepo

import (
	"context"
	"encoding/json"

	"campaignmap/internal/adapter/repo/gorm/model"
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"

	"gorm.io/gorm"
)

type MovementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepo {
	return MovementRepo{db: db}
}

func (r MovementRepo) Append(ctx context.Context, rec campaign.MovementRecord) error {
	events := rec.Events
	if events == nil {
		events = []string{}
	}
	b, err := json.Marshal(events)
	if err != nil {
		return err
	}
	m := model.MovementHistory{
		CharacterID: rec.CharacterID,
		CampaignID:  rec.CampaignID,
		Kind:        string(rec.Kind),
		FromX:       int32(rec.From.X),
		FromY:       int32(rec.From.Y),
		ToX:         int32(rec.To.X),
		ToY:         int32(rec.To.Y),
		Events:      b,
		CreatedAt:   rec.CreatedAt,
	}
	return translateWriteErr(getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&m).Error)
}

func (r MovementRepo) ListByCharacter(ctx context.Context, characterID int64, limit int) ([]campaign.MovementRecord, error) {
	q := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where("character_id = ?", characterID).
		Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []model.MovementHistory
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]campaign.MovementRecord, 0, len(rows))
	for _, row := range rows {
		events := []string{}
		if len(row.Events) > 0 {
			if err := json.Unmarshal(row.Events, &events); err != nil {
				return nil, err
			}
		}
		out = append(out, campaign.MovementRecord{
			ID:          row.ID,
			CharacterID: row.CharacterID,
			CampaignID:  row.CampaignID,
			Kind:        campaign.MoveKind(row.Kind),
			From:        world.Point{X: int(row.FromX), Y: int(row.FromY)},
			To:          world.Point{X: int(row.ToX), Y: int(row.ToY)},
			Events:      events,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}
