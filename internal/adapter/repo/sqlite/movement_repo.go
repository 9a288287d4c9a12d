package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"campaignmap/internal/domain/campaign"
)

type MovementRepo struct {
	store *Store
}

func NewMovementRepo(store *Store) MovementRepo {
	return MovementRepo{store: store}
}

func (r MovementRepo) Append(ctx context.Context, rec campaign.MovementRecord) error {
	events := rec.Events
	if events == nil {
		events = []string{}
	}
	b, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	_, err = r.store.q(ctx).ExecContext(ctx,
		`INSERT INTO movement_history (character_id, campaign_id, kind, from_x, from_y, to_x, to_y, events, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CharacterID, rec.CampaignID, string(rec.Kind),
		rec.From.X, rec.From.Y, rec.To.X, rec.To.Y,
		string(b), toMillis(rec.CreatedAt))
	return err
}

// ListByCharacter returns newest first. A non-positive limit returns everything.
func (r MovementRepo) ListByCharacter(ctx context.Context, characterID int64, limit int) ([]campaign.MovementRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.store.q(ctx).QueryContext(ctx,
		`SELECT id, character_id, campaign_id, kind, from_x, from_y, to_x, to_y, events, created_at
		 FROM movement_history WHERE character_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		characterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []campaign.MovementRecord{}
	for rows.Next() {
		var (
			rec       campaign.MovementRecord
			kind      string
			events    string
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.CharacterID, &rec.CampaignID, &kind,
			&rec.From.X, &rec.From.Y, &rec.To.X, &rec.To.Y, &events, &createdAt); err != nil {
			return nil, err
		}
		rec.Kind = campaign.MoveKind(kind)
		rec.CreatedAt = fromMillis(createdAt)
		rec.Events = []string{}
		if events != "" {
			if err := json.Unmarshal([]byte(events), &rec.Events); err != nil {
				return nil, fmt.Errorf("decode events: %w", err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
