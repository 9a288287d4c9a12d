package world

const ChunkSize = 8

type ChunkCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Chunk struct {
	Coord ChunkCoord `json:"coord"`
	Tiles []Tile     `json:"tiles"`
}

// Layer identifies a generated map: chunks are only reusable under the same seed and size.
type Layer struct {
	Seed    int64
	MapSize int
}

func ChunkOf(p Point) ChunkCoord {
	return ChunkCoord{X: FloorDiv(p.X, ChunkSize), Y: FloorDiv(p.Y, ChunkSize)}
}

func GenerateChunk(layer Layer, coord ChunkCoord) Chunk {
	tiles := make([]Tile, 0, ChunkSize*ChunkSize)
	baseX := coord.X * ChunkSize
	baseY := coord.Y * ChunkSize
	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			tiles = append(tiles, NewTile(baseX+x, baseY+y, layer.Seed, layer.MapSize))
		}
	}
	return Chunk{Coord: coord, Tiles: tiles}
}

func FloorDiv(a, b int) int {
	if a >= 0 {
		return a / b
	}
	return -(((-a) + b - 1) / b)
}
