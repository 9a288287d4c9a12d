package mock

import (
	"context"

	"campaignmap/internal/domain/world"
)

// Provider returns a fixed snapshot, or a single grass tile at the origin when
// none is set. Err, when non-nil, is returned instead.
type Provider struct {
	Snapshot world.Snapshot
	Err      error
	Calls    *int
}

func (p Provider) Render(_ context.Context, layer world.Layer, bounds world.Bounds) (world.Snapshot, error) {
	if p.Calls != nil {
		*p.Calls++
	}
	if p.Err != nil {
		return world.Snapshot{}, p.Err
	}
	s := p.Snapshot
	s.Seed = layer.Seed
	s.MapSize = layer.MapSize
	s.Bounds = bounds
	if len(s.Tiles) == 0 {
		info, _ := world.Info(world.TerrainGrass)
		s.Tiles = []world.Tile{{
			X:        0,
			Y:        0,
			Kind:     world.TerrainGrass,
			Color:    info.Color,
			Walkable: true,
		}}
		s.Counts = map[world.TerrainKind]int{world.TerrainGrass: 1}
	}
	if s.Legend == nil {
		s.Legend = world.Legend()
	}
	return s, nil
}
