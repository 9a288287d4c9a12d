package campaign

import (
	"strings"
	"time"

	"campaignmap/internal/domain/world"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusPaused    Status = "paused"
)

const (
	MaxMapSize = 50
	// SeedSpace bounds generated seeds to [0, SeedSpace).
	SeedSpace = 1_000_000
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusActive, StatusCompleted, StatusPaused:
		return s, nil
	default:
		return "", ErrInvalidInput
	}
}

type Campaign struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Seed      int64     `json:"map_seed"`
	MapSize   int       `json:"map_size"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Campaign) Layer() world.Layer {
	return world.Layer{Seed: c.Seed, MapSize: c.MapSize}
}

func (c Campaign) Bounds() world.Bounds {
	return world.GameplayBounds(c.MapSize)
}

type Character struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	CampaignID *int64       `json:"campaign_id"`
	Location   *world.Point `json:"location"`
}

func (c Character) Linked() bool {
	return c.CampaignID != nil && *c.CampaignID > 0
}

func (c Character) InCampaign(campaignID int64) bool {
	return c.Linked() && *c.CampaignID == campaignID
}

// MovementRecord is append-only. Events stays empty; it is reserved for narration.
type MovementRecord struct {
	ID          int64       `json:"id"`
	CharacterID int64       `json:"character_id"`
	CampaignID  int64       `json:"campaign_id"`
	Kind        MoveKind    `json:"kind"`
	From        world.Point `json:"from"`
	To          world.Point `json:"to"`
	Events      []string    `json:"events"`
	CreatedAt   time.Time   `json:"created_at"`
}

func NewMovementRecord(characterID, campaignID int64, kind MoveKind, from, to world.Point, at time.Time) MovementRecord {
	return MovementRecord{
		CharacterID: characterID,
		CampaignID:  campaignID,
		Kind:        kind,
		From:        from,
		To:          to,
		Events:      []string{},
		CreatedAt:   at,
	}
}
