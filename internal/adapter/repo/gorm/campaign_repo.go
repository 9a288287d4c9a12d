package gormrepo

import (
	"context"
	"errors"
	"time"

	"campaignmap/internal/adapter/repo/gorm/model"
	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"

	"gorm.io/gorm"
)

type CampaignRepo struct {
	db *gorm.DB
}

func NewCampaignRepo(db *gorm.DB) CampaignRepo {
	return CampaignRepo{db: db}
}

func (r CampaignRepo) Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	m := model.Campaign{
		Name:      c.Name,
		Status:    string(c.Status),
		MapSeed:   c.Seed,
		MapSize:   int32(c.MapSize),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&m).Error; err != nil {
		return campaign.Campaign{}, translateWriteErr(err)
	}
	return toCampaign(m), nil
}

func (r CampaignRepo) GetByID(ctx context.Context, id int64) (campaign.Campaign, error) {
	return r.first(getDBFromCtx(ctx, r.db).WithContext(ctx).Where("id = ?", id))
}

// GetForUpdate takes a row lock that lasts until the surrounding transaction ends.
func (r CampaignRepo) GetForUpdate(ctx context.Context, id int64) (campaign.Campaign, error) {
	return r.first(forUpdate(getDBFromCtx(ctx, r.db).WithContext(ctx)).Where("id = ?", id))
}

func (r CampaignRepo) FindActive(ctx context.Context) (campaign.Campaign, error) {
	return r.first(getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where("status = ?", string(campaign.StatusActive)).
		Order("created_at DESC").Order("id DESC"))
}

func (r CampaignRepo) List(ctx context.Context) ([]campaign.Campaign, error) {
	var rows []model.Campaign
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]campaign.Campaign, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCampaign(row))
	}
	return out, nil
}

func (r CampaignRepo) UpdateStatus(ctx context.Context, id int64, status campaign.Status) error {
	res := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Model(&model.Campaign{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r CampaignRepo) first(q *gorm.DB) (campaign.Campaign, error) {
	var m model.Campaign
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return campaign.Campaign{}, ports.ErrNotFound
		}
		return campaign.Campaign{}, err
	}
	return toCampaign(m), nil
}

func toCampaign(m model.Campaign) campaign.Campaign {
	return campaign.Campaign{
		ID:        m.ID,
		Name:      m.Name,
		Status:    campaign.Status(m.Status),
		Seed:      m.MapSeed,
		MapSize:   int(m.MapSize),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
