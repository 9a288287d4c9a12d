package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"
)

type CharacterRepo struct {
	store *Store
}

func NewCharacterRepo(store *Store) CharacterRepo {
	return CharacterRepo{store: store}
}

const characterColumns = `id, name, campaign_id, location_x, location_y`

func (r CharacterRepo) Create(ctx context.Context, c campaign.Character) (campaign.Character, error) {
	var x, y sql.NullInt64
	if c.Location != nil {
		x = sql.NullInt64{Int64: int64(c.Location.X), Valid: true}
		y = sql.NullInt64{Int64: int64(c.Location.Y), Valid: true}
	}
	var campaignID sql.NullInt64
	if c.CampaignID != nil {
		campaignID = sql.NullInt64{Int64: *c.CampaignID, Valid: true}
	}
	now := toMillis(time.Now())
	res, err := r.store.q(ctx).ExecContext(ctx,
		`INSERT INTO characters (name, campaign_id, location_x, location_y, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, campaignID, x, y, now, now)
	if err != nil {
		return campaign.Character{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return campaign.Character{}, err
	}
	c.ID = id
	return c, nil
}

func (r CharacterRepo) GetByID(ctx context.Context, id int64) (campaign.Character, error) {
	c, err := scanCharacter(r.store.q(ctx).QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return campaign.Character{}, ports.ErrNotFound
	}
	return c, err
}

func (r CharacterRepo) List(ctx context.Context) ([]campaign.Character, error) {
	return r.query(ctx, `SELECT `+characterColumns+` FROM characters ORDER BY id`)
}

func (r CharacterRepo) ListByCampaign(ctx context.Context, campaignID int64) ([]campaign.Character, error) {
	return r.query(ctx, `SELECT `+characterColumns+` FROM characters WHERE campaign_id = ? ORDER BY id`, campaignID)
}

func (r CharacterRepo) UpdateLocation(ctx context.Context, id int64, campaignID int64, loc world.Point) error {
	res, err := r.store.q(ctx).ExecContext(ctx,
		`UPDATE characters SET campaign_id = ?, location_x = ?, location_y = ?, updated_at = ? WHERE id = ?`,
		campaignID, loc.X, loc.Y, toMillis(time.Now()), id)
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

func (r CharacterRepo) query(ctx context.Context, query string, args ...any) ([]campaign.Character, error) {
	rows, err := r.store.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []campaign.Character{}
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCharacter(row rowScanner) (campaign.Character, error) {
	var (
		c          campaign.Character
		campaignID sql.NullInt64
		x, y       sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Name, &campaignID, &x, &y); err != nil {
		return campaign.Character{}, err
	}
	if campaignID.Valid {
		id := campaignID.Int64
		c.CampaignID = &id
	}
	if x.Valid && y.Valid {
		c.Location = &world.Point{X: int(x.Int64), Y: int(y.Int64)}
	}
	return c, nil
}
