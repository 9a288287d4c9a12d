package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
)

type CampaignRepo struct {
	store *Store
}

func NewCampaignRepo(store *Store) CampaignRepo {
	return CampaignRepo{store: store}
}

const campaignColumns = `id, name, status, map_seed, map_size, created_at, updated_at`

func (r CampaignRepo) Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	res, err := r.store.q(ctx).ExecContext(ctx,
		`INSERT INTO campaigns (name, status, map_seed, map_size, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, string(c.Status), c.Seed, c.MapSize, toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	if err != nil {
		return campaign.Campaign{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return campaign.Campaign{}, err
	}
	c.ID = id
	c.CreatedAt = fromMillis(toMillis(c.CreatedAt))
	c.UpdatedAt = fromMillis(toMillis(c.UpdatedAt))
	return c, nil
}

func (r CampaignRepo) GetByID(ctx context.Context, id int64) (campaign.Campaign, error) {
	return scanCampaign(r.store.q(ctx).QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`, id))
}

// GetForUpdate relies on transactions starting IMMEDIATE: the write lock is
// already held, so a plain read is serialized with every other writer.
func (r CampaignRepo) GetForUpdate(ctx context.Context, id int64) (campaign.Campaign, error) {
	return r.GetByID(ctx, id)
}

func (r CampaignRepo) FindActive(ctx context.Context) (campaign.Campaign, error) {
	return scanCampaign(r.store.q(ctx).QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE status = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		string(campaign.StatusActive)))
}

func (r CampaignRepo) List(ctx context.Context) ([]campaign.Campaign, error) {
	rows, err := r.store.q(ctx).QueryContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []campaign.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CampaignRepo) UpdateStatus(ctx context.Context, id int64, status campaign.Status) error {
	res, err := r.store.q(ctx).ExecContext(ctx,
		`UPDATE campaigns SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), toMillis(time.Now()), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ports.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (campaign.Campaign, error) {
	var (
		c                    campaign.Campaign
		status               string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&c.ID, &c.Name, &status, &c.Seed, &c.MapSize, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return campaign.Campaign{}, ports.ErrNotFound
		}
		return campaign.Campaign{}, err
	}
	c.Status = campaign.Status(status)
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}
