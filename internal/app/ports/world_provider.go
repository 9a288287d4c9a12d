package ports

import (
	"context"

	"campaignmap/internal/domain/world"
)

type MapProvider interface {
	Render(ctx context.Context, layer world.Layer, bounds world.Bounds) (world.Snapshot, error)
}
