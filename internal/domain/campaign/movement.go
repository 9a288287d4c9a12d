package campaign

import (
	"errors"
	"fmt"
	"math"

	"campaignmap/internal/domain/world"
)

var (
	ErrNotLinked        = errors.New("character not linked to a campaign")
	ErrNotPlaced        = errors.New("character has no location")
	ErrInvalidInput     = errors.New("invalid input")
	ErrImpassable       = errors.New("impassable terrain")
	ErrOccupied         = errors.New("cell occupied")
	ErrOutOfBounds      = errors.New("destination outside map bounds")
	ErrNoActiveCampaign = errors.New("no active campaign")
)

type MoveKind string

const (
	MoveStep     MoveKind = "step"
	MoveTeleport MoveKind = "teleport"
)

type Stage string

const (
	StageRequested        Stage = "requested"
	StageTerrainChecked   Stage = "terrain_checked"
	StageOccupancyChecked Stage = "occupancy_checked"
)

type MoveRejectedError struct {
	Reason  error
	Stage   Stage
	To      world.Point
	Terrain world.TerrainKind
}

func (e *MoveRejectedError) Error() string {
	return e.Reason.Error()
}

func (e *MoveRejectedError) Unwrap() error {
	return e.Reason
}

type Rules struct {
	Seed            int64
	MapSize         int
	TeleportBounded bool
}

func RulesFor(c Campaign, teleportBounded bool) Rules {
	return Rules{Seed: c.Seed, MapSize: c.MapSize, TeleportBounded: teleportBounded}
}

type Occupancy interface {
	Occupied(p world.Point) bool
}

// OccupancySet is a point-in-time view of who stands where. Build it inside the
// same transaction as the write it guards.
type OccupancySet map[world.Point]int64

// NewOccupancy indexes placed characters, skipping exclude so a character never
// collides with itself.
func NewOccupancy(chars []Character, exclude int64) OccupancySet {
	out := make(OccupancySet, len(chars))
	for _, c := range chars {
		if c.ID == exclude || c.Location == nil {
			continue
		}
		out[*c.Location] = c.ID
	}
	return out
}

func (s OccupancySet) Occupied(p world.Point) bool {
	_, ok := s[p]
	return ok
}

func ValidateStepDelta(dx, dy int) error {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return fmt.Errorf("%w: dx and dy must be in {-1,0,1}", ErrInvalidInput)
	}
	return nil
}

func StepTarget(from world.Point, dx, dy int) (world.Point, error) {
	if err := ValidateStepDelta(dx, dy); err != nil {
		return world.Point{}, err
	}
	return from.Add(dx, dy), nil
}

// Storable reports whether p fits the 32-bit location columns.
func Storable(p world.Point) bool {
	return p.X >= math.MinInt32 && p.X <= math.MaxInt32 &&
		p.Y >= math.MinInt32 && p.Y <= math.MaxInt32
}

// ValidateDestination runs terrain then occupancy checks. Teleport has no
// adjacency constraint and is only range-limited when rules say so.
func ValidateDestination(kind MoveKind, to world.Point, rules Rules, occupied Occupancy) error {
	if !Storable(to) {
		return &MoveRejectedError{Reason: ErrInvalidInput, Stage: StageRequested, To: to}
	}
	if kind == MoveTeleport && rules.TeleportBounded && !world.GameplayBounds(rules.MapSize).Contains(to) {
		return &MoveRejectedError{Reason: ErrOutOfBounds, Stage: StageRequested, To: to}
	}
	terrain := world.Classify(to.X, to.Y, rules.Seed, rules.MapSize)
	if !world.Walkable(terrain) {
		return &MoveRejectedError{Reason: ErrImpassable, Stage: StageTerrainChecked, To: to, Terrain: terrain}
	}
	if occupied != nil && occupied.Occupied(to) {
		return &MoveRejectedError{Reason: ErrOccupied, Stage: StageOccupancyChecked, To: to, Terrain: terrain}
	}
	return nil
}
