package gormrepo

import (
	"context"
	"errors"
	"time"

	"campaignmap/internal/adapter/repo/gorm/model"
	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"

	"gorm.io/gorm"
)

type CharacterRepo struct {
	db *gorm.DB
}

func NewCharacterRepo(db *gorm.DB) CharacterRepo {
	return CharacterRepo{db: db}
}

func (r CharacterRepo) Create(ctx context.Context, c campaign.Character) (campaign.Character, error) {
	now := time.Now()
	m := model.Character{Name: c.Name, CampaignID: c.CampaignID, CreatedAt: now, UpdatedAt: now}
	if c.Location != nil {
		x, y := int32(c.Location.X), int32(c.Location.Y)
		m.LocationX, m.LocationY = &x, &y
	}
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&m).Error; err != nil {
		return campaign.Character{}, translateWriteErr(err)
	}
	return toCharacter(m), nil
}

func (r CharacterRepo) GetByID(ctx context.Context, id int64) (campaign.Character, error) {
	var m model.Character
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return campaign.Character{}, ports.ErrNotFound
		}
		return campaign.Character{}, err
	}
	return toCharacter(m), nil
}

func (r CharacterRepo) List(ctx context.Context) ([]campaign.Character, error) {
	return r.find(getDBFromCtx(ctx, r.db).WithContext(ctx))
}

func (r CharacterRepo) ListByCampaign(ctx context.Context, campaignID int64) ([]campaign.Character, error) {
	return r.find(getDBFromCtx(ctx, r.db).WithContext(ctx).Where("campaign_id = ?", campaignID))
}

// UpdateLocation also binds the character to campaignID.
func (r CharacterRepo) UpdateLocation(ctx context.Context, id int64, campaignID int64, loc world.Point) error {
	res := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Model(&model.Character{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"campaign_id": campaignID,
			"location_x":  int32(loc.X),
			"location_y":  int32(loc.Y),
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return translateWriteErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r CharacterRepo) find(q *gorm.DB) ([]campaign.Character, error) {
	var rows []model.Character
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]campaign.Character, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCharacter(row))
	}
	return out, nil
}

func toCharacter(m model.Character) campaign.Character {
	c := campaign.Character{ID: m.ID, Name: m.Name, CampaignID: m.CampaignID}
	if m.LocationX != nil && m.LocationY != nil {
		c.Location = &world.Point{X: int(*m.LocationX), Y: int(*m.LocationY)}
	}
	return c
}
