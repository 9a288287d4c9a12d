package campaign

import (
	"math/rand/v2"

	"campaignmap/internal/domain/world"
)

type Tier string

const (
	TierStrict     Tier = "strict"
	TierRelaxed    Tier = "relaxed"
	TierExhaustive Tier = "exhaustive"
	TierCenter     Tier = "center"
)

const (
	DefaultStrictAttempts  = 100
	DefaultRelaxedAttempts = 200
)

type Placement struct {
	Point world.Point `json:"point"`
	Tier  Tier        `json:"tier"`
}

type Planner struct {
	Rand            *rand.Rand
	StrictAttempts  int
	RelaxedAttempts int
}

func NewPlanner(r *rand.Rand) Planner {
	return Planner{
		Rand:            r,
		StrictAttempts:  DefaultStrictAttempts,
		RelaxedAttempts: DefaultRelaxedAttempts,
	}
}

// WalkableCells enumerates the gameplay grid inclusively and keeps strict-walkable cells.
func WalkableCells(layer world.Layer) []world.Point {
	bounds := world.GameplayBounds(layer.MapSize)
	out := make([]world.Point, 0, bounds.Cells())
	bounds.Each(func(p world.Point) bool {
		if world.WalkableAt(p.X, p.Y, layer.Seed, layer.MapSize) {
			out = append(out, p)
		}
		return true
	})
	return out
}

// PlaceAll assigns n distinct walkable cells in shuffled order. When the grid
// runs out, the remaining characters all land on the grid center, which can
// stack several of them on one cell.
func (p Planner) PlaceAll(layer world.Layer, n int) []Placement {
	if n <= 0 {
		return nil
	}
	cells := WalkableCells(layer)
	p.shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	center := world.GameplayBounds(layer.MapSize).Center()
	out := make([]Placement, 0, n)
	for i := 0; i < n; i++ {
		if i < len(cells) {
			out = append(out, Placement{Point: cells[i], Tier: TierStrict})
			continue
		}
		out = append(out, Placement{Point: center, Tier: TierCenter})
	}
	return out
}

// PlaceOne finds a cell for a single late-joining character: random strict
// sampling, then relaxed sampling, then a full scan accepting anything but
// mountains, then the grid center.
func (p Planner) PlaceOne(layer world.Layer, occupied Occupancy) Placement {
	bounds := world.GameplayBounds(layer.MapSize)
	free := func(pt world.Point) bool {
		return occupied == nil || !occupied.Occupied(pt)
	}

	for i := 0; i < p.strictAttempts(); i++ {
		pt := p.randomPoint(bounds)
		if world.WalkableAt(pt.X, pt.Y, layer.Seed, layer.MapSize) && free(pt) {
			return Placement{Point: pt, Tier: TierStrict}
		}
	}
	for i := 0; i < p.relaxedAttempts(); i++ {
		pt := p.randomPoint(bounds)
		if world.RelaxedWalkableAt(pt.X, pt.Y, layer.Seed, layer.MapSize) && free(pt) {
			return Placement{Point: pt, Tier: TierRelaxed}
		}
	}

	found := Placement{Point: bounds.Center(), Tier: TierCenter}
	bounds.Each(func(pt world.Point) bool {
		if world.Classify(pt.X, pt.Y, layer.Seed, layer.MapSize) == world.TerrainMountain || !free(pt) {
			return true
		}
		found = Placement{Point: pt, Tier: TierExhaustive}
		return false
	})
	return found
}

// Zero selects the default; a negative count disables the tier.
func (p Planner) strictAttempts() int {
	return attempts(p.StrictAttempts, DefaultStrictAttempts)
}

func (p Planner) relaxedAttempts() int {
	return attempts(p.RelaxedAttempts, DefaultRelaxedAttempts)
}

func attempts(n, def int) int {
	switch {
	case n < 0:
		return 0
	case n == 0:
		return def
	default:
		return n
	}
}

func (p Planner) randomPoint(b world.Bounds) world.Point {
	return world.Point{X: p.intN(b.Width + 1), Y: p.intN(b.Height + 1)}
}

func (p Planner) intN(n int) int {
	if p.Rand != nil {
		return p.Rand.IntN(n)
	}
	return rand.IntN(n)
}

func (p Planner) shuffle(n int, swap func(i, j int)) {
	if p.Rand != nil {
		p.Rand.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
