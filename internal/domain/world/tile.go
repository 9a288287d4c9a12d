package world

type TerrainKind string

const (
	TerrainGrass    TerrainKind = "grass"
	TerrainForest   TerrainKind = "forest"
	TerrainMountain TerrainKind = "mountain"
	TerrainWater    TerrainKind = "water"
	TerrainDesert   TerrainKind = "desert"
	TerrainSnow     TerrainKind = "snow"
	TerrainSwamp    TerrainKind = "swamp"
)

type TerrainInfo struct {
	Kind         TerrainKind `json:"kind"`
	Name         string      `json:"name"`
	Color        string      `json:"color"`
	Walkable     bool        `json:"walkable"`
	DefenseBonus int         `json:"defense_bonus"`
}

var terrainTable = map[TerrainKind]TerrainInfo{
	TerrainGrass:    {Kind: TerrainGrass, Name: "Grama", Color: "#90EE90", Walkable: true, DefenseBonus: 0},
	TerrainForest:   {Kind: TerrainForest, Name: "Floresta", Color: "#228B22", Walkable: true, DefenseBonus: 1},
	TerrainMountain: {Kind: TerrainMountain, Name: "Montanha", Color: "#696969", Walkable: false, DefenseBonus: 2},
	TerrainWater:    {Kind: TerrainWater, Name: "Água", Color: "#4169E1", Walkable: false, DefenseBonus: 0},
	TerrainDesert:   {Kind: TerrainDesert, Name: "Deserto", Color: "#F4A460", Walkable: true, DefenseBonus: -1},
	TerrainSnow:     {Kind: TerrainSnow, Name: "Neve", Color: "#F0F8FF", Walkable: true, DefenseBonus: 0},
	TerrainSwamp:    {Kind: TerrainSwamp, Name: "Pântano", Color: "#556B2F", Walkable: true, DefenseBonus: -1},
}

// TerrainKinds lists every kind in legend order.
func TerrainKinds() []TerrainKind {
	return []TerrainKind{
		TerrainGrass,
		TerrainForest,
		TerrainMountain,
		TerrainWater,
		TerrainDesert,
		TerrainSnow,
		TerrainSwamp,
	}
}

func Info(kind TerrainKind) (TerrainInfo, bool) {
	info, ok := terrainTable[kind]
	return info, ok
}

// Walkable reports false for unknown kinds.
func Walkable(kind TerrainKind) bool {
	return terrainTable[kind].Walkable
}

type Tile struct {
	X            int         `json:"x"`
	Y            int         `json:"y"`
	Kind         TerrainKind `json:"kind"`
	Color        string      `json:"color"`
	Walkable     bool        `json:"walkable"`
	DefenseBonus int         `json:"defense_bonus"`
	Elevation    float64     `json:"elevation"`
}

func NewTile(x, y int, seed int64, mapSize int) Tile {
	s := SampleAt(x, y, seed, mapSize)
	info := terrainTable[s.Kind]
	return Tile{
		X:            x,
		Y:            y,
		Kind:         s.Kind,
		Color:        info.Color,
		Walkable:     info.Walkable,
		DefenseBonus: info.DefenseBonus,
		Elevation:    s.Elevation,
	}
}
