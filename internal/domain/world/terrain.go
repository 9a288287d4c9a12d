package world

import "math"

const DefaultMapSize = 5

const (
	borderFactorX = 2.5
	borderFactorY = 0.7

	relaxedBorderFactorX = 3.0
	relaxedBorderFactorY = 1.0
)

type Sample struct {
	Elevation   float64     `json:"elevation"`
	Moisture    float64     `json:"moisture"`
	Temperature float64     `json:"temperature"`
	Border      bool        `json:"border"`
	Kind        TerrainKind `json:"kind"`
}

// Classify maps a cell to its terrain kind. Pure in all four inputs.
func Classify(x, y int, seed int64, mapSize int) TerrainKind {
	return SampleAt(x, y, seed, mapSize).Kind
}

func SampleAt(x, y int, seed int64, mapSize int) Sample {
	return sample(x, y, seed, mapSize, borderFactorX, borderFactorY)
}

// WalkableAt is the walkability query movement validation is built on.
func WalkableAt(x, y int, seed int64, mapSize int) bool {
	return Walkable(Classify(x, y, seed, mapSize))
}

// RelaxedWalkableAt widens the border band so cells walled off only by the
// border mountain rule become acceptable. Placement fallback only.
func RelaxedWalkableAt(x, y int, seed int64, mapSize int) bool {
	if WalkableAt(x, y, seed, mapSize) {
		return true
	}
	s := sample(x, y, seed, mapSize, relaxedBorderFactorX, relaxedBorderFactorY)
	return Walkable(s.Kind)
}

func NormalizeMapSize(mapSize int) int {
	if mapSize <= 0 {
		return DefaultMapSize
	}
	return mapSize
}

func sample(x, y int, seed int64, mapSize int, bx, by float64) Sample {
	size := float64(NormalizeMapSize(mapSize))
	fx, fy := float64(x), float64(y)
	s := Sample{
		Elevation:   Noise(fx*0.1, fy*0.1, float64(seed)),
		Moisture:    Noise(fx*0.05+100, fy*0.05+100, float64(seed)),
		Temperature: 1 - math.Abs(fy)/size,
		Border:      math.Abs(fx) > size*bx || math.Abs(fy) > size*by,
	}
	s.Kind = classify(s)
	return s
}

func classify(s Sample) TerrainKind {
	switch {
	case s.Border && s.Elevation > 0.5:
		return TerrainMountain
	case s.Elevation > 0.7:
		if s.Temperature > 0.3 {
			return TerrainMountain
		}
		return TerrainSnow
	case s.Moisture > 0.6:
		if s.Elevation > 0.3 {
			return TerrainSwamp
		}
		return TerrainWater
	case s.Temperature < 0.2:
		return TerrainSnow
	case s.Temperature > 0.8 && s.Moisture < 0.3:
		return TerrainDesert
	case s.Elevation > 0.4:
		return TerrainForest
	default:
		return TerrainGrass
	}
}
