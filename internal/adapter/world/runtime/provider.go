package runtime

import (
	"context"
	"sort"
	"sync"

	"campaignmap/internal/domain/world"
)

type Config struct {
	// ChunkStore caches generated chunks per layer. Nil regenerates every time.
	ChunkStore ChunkStore
}

// Provider renders terrain windows chunk by chunk. Terrain is a pure function
// of the layer, so a cached chunk is always interchangeable with a fresh one.
type Provider struct {
	cfg Config
}

type ChunkStore interface {
	GetChunk(ctx context.Context, layer world.Layer, coord world.ChunkCoord) (world.Chunk, bool, error)
	SaveChunk(ctx context.Context, layer world.Layer, chunk world.Chunk) error
}

func NewProvider(cfg Config) Provider {
	return Provider{cfg: cfg}
}

func (p Provider) Render(ctx context.Context, layer world.Layer, bounds world.Bounds) (world.Snapshot, error) {
	layer.MapSize = world.NormalizeMapSize(layer.MapSize)
	chunks, err := p.loadChunksForWindow(ctx, layer, bounds)
	if err != nil {
		return world.Snapshot{}, err
	}

	tiles := make([]world.Tile, 0, bounds.Cells())
	counts := map[world.TerrainKind]int{}
	for _, chunk := range chunks {
		for _, t := range chunk.Tiles {
			if !bounds.Contains(world.Point{X: t.X, Y: t.Y}) {
				continue
			}
			tiles = append(tiles, t)
			counts[t.Kind]++
		}
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Y != tiles[j].Y {
			return tiles[i].Y < tiles[j].Y
		}
		return tiles[i].X < tiles[j].X
	})

	return world.Snapshot{
		Seed:    layer.Seed,
		MapSize: layer.MapSize,
		Bounds:  bounds,
		Legend:  world.Legend(),
		Tiles:   tiles,
		Counts:  counts,
	}, nil
}

func (p Provider) loadChunksForWindow(ctx context.Context, layer world.Layer, bounds world.Bounds) ([]world.Chunk, error) {
	minC := world.ChunkOf(world.Point{})
	maxC := world.ChunkOf(world.Point{X: bounds.Width, Y: bounds.Height})

	out := make([]world.Chunk, 0, (maxC.X-minC.X+1)*(maxC.Y-minC.Y+1))
	for cy := minC.Y; cy <= maxC.Y; cy++ {
		for cx := minC.X; cx <= maxC.X; cx++ {
			coord := world.ChunkCoord{X: cx, Y: cy}
			if p.cfg.ChunkStore != nil {
				if cached, ok, err := p.cfg.ChunkStore.GetChunk(ctx, layer, coord); err != nil {
					return nil, err
				} else if ok {
					out = append(out, cached)
					continue
				}
			}
			chunk := world.GenerateChunk(layer, coord)
			if p.cfg.ChunkStore != nil {
				if err := p.cfg.ChunkStore.SaveChunk(ctx, layer, chunk); err != nil {
					return nil, err
				}
			}
			out = append(out, chunk)
		}
	}
	return out, nil
}

type memoryKey struct {
	layer world.Layer
	coord world.ChunkCoord
}

// MemoryChunkStore keeps chunks for the life of the process.
type MemoryChunkStore struct {
	mu     sync.RWMutex
	chunks map[memoryKey]world.Chunk
}

func NewMemoryChunkStore() *MemoryChunkStore {
	return &MemoryChunkStore{chunks: map[memoryKey]world.Chunk{}}
}

func (s *MemoryChunkStore) GetChunk(_ context.Context, layer world.Layer, coord world.ChunkCoord) (world.Chunk, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chunks[memoryKey{layer: layer, coord: coord}]
	return c, ok, nil
}

func (s *MemoryChunkStore) SaveChunk(_ context.Context, layer world.Layer, chunk world.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[memoryKey{layer: layer, coord: chunk.Coord}] = chunk
	return nil
}

func (s *MemoryChunkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}
