package world

type Snapshot struct {
	Seed    int64               `json:"map_seed"`
	MapSize int                 `json:"map_size"`
	Bounds  Bounds              `json:"bounds"`
	Legend  []TerrainInfo       `json:"legend"`
	Tiles   []Tile              `json:"tiles"`
	Counts  map[TerrainKind]int `json:"counts"`
}

func Legend() []TerrainInfo {
	kinds := TerrainKinds()
	out := make([]TerrainInfo, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, terrainTable[k])
	}
	return out
}
