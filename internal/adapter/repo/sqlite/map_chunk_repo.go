package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"campaignmap/internal/domain/world"
)

// MapChunkRepo caches generated terrain chunks keyed by seed and map size.
type MapChunkRepo struct {
	store *Store
}

func NewMapChunkRepo(store *Store) MapChunkRepo {
	return MapChunkRepo{store: store}
}

func (r MapChunkRepo) GetChunk(ctx context.Context, layer world.Layer, coord world.ChunkCoord) (world.Chunk, bool, error) {
	var raw string
	err := r.store.sqlDB.QueryRowContext(ctx,
		`SELECT tiles FROM map_chunks WHERE seed = ? AND map_size = ? AND chunk_x = ? AND chunk_y = ?`,
		layer.Seed, layer.MapSize, coord.X, coord.Y).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return world.Chunk{}, false, nil
	}
	if err != nil {
		return world.Chunk{}, false, err
	}
	tiles := []world.Tile{}
	if err := json.Unmarshal([]byte(raw), &tiles); err != nil {
		return world.Chunk{}, false, err
	}
	return world.Chunk{Coord: coord, Tiles: tiles}, true, nil
}

func (r MapChunkRepo) SaveChunk(ctx context.Context, layer world.Layer, chunk world.Chunk) error {
	b, err := json.Marshal(chunk.Tiles)
	if err != nil {
		return err
	}
	_, err = r.store.sqlDB.ExecContext(ctx,
		`INSERT INTO map_chunks (seed, map_size, chunk_x, chunk_y, tiles, updated_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (seed, map_size, chunk_x, chunk_y) DO UPDATE SET tiles = excluded.tiles, updated_at = excluded.updated_at`,
		layer.Seed, layer.MapSize, chunk.Coord.X, chunk.Coord.Y, string(b), toMillis(time.Now()))
	return err
}
