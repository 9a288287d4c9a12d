package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"campaignmap/internal/adapter/repo/gorm/model"
	"campaignmap/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MapChunkRepo struct {
	db *gorm.DB
}

func NewMapChunkRepo(db *gorm.DB) MapChunkRepo {
	return MapChunkRepo{db: db}
}

func (r MapChunkRepo) GetChunk(ctx context.Context, layer world.Layer, coord world.ChunkCoord) (world.Chunk, bool, error) {
	var row model.MapChunk
	err := r.db.WithContext(ctx).
		Where(map[string]any{
			"seed":     layer.Seed,
			"map_size": int32(layer.MapSize),
			"chunk_x":  int32(coord.X),
			"chunk_y":  int32(coord.Y),
		}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return world.Chunk{}, false, nil
		}
		return world.Chunk{}, false, err
	}
	tiles, err := unmarshalChunkTiles(row.Tiles)
	if err != nil {
		return world.Chunk{}, false, err
	}
	return world.Chunk{Coord: coord, Tiles: tiles}, true, nil
}

func (r MapChunkRepo) SaveChunk(ctx context.Context, layer world.Layer, chunk world.Chunk) error {
	b, err := json.Marshal(chunk.Tiles)
	if err != nil {
		return err
	}
	row := model.MapChunk{
		Seed:      layer.Seed,
		MapSize:   int32(layer.MapSize),
		ChunkX:    int32(chunk.Coord.X),
		ChunkY:    int32(chunk.Coord.Y),
		Tiles:     b,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "seed"}, {Name: "map_size"}, {Name: "chunk_x"}, {Name: "chunk_y"}},
		DoUpdates: clause.AssignmentColumns([]string{"tiles", "updated_at"}),
	}).Create(&row).Error
}

func unmarshalChunkTiles(data []byte) ([]world.Tile, error) {
	out := []world.Tile{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
