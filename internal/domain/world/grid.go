package world

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Bounds is an inclusive rectangle anchored at the origin: x in [0,Width], y in [0,Height].
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GameplayBounds is the placement grid. Movement never clamps to it unless
// teleport bounding is switched on.
func GameplayBounds(mapSize int) Bounds {
	size := NormalizeMapSize(mapSize)
	return Bounds{Width: size * 6, Height: size * 2}
}

// VisualBounds is the extent enumerated by the standalone map generator.
// It is derived independently of GameplayBounds and must stay that way.
func VisualBounds(mapSize int) Bounds {
	size := NormalizeMapSize(mapSize)
	return Bounds{Width: size * 3 * 2, Height: size * 2}
}

func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

func (b Bounds) Center() Point {
	return Point{X: b.Width / 2, Y: b.Height / 2}
}

func (b Bounds) Cells() int {
	return (b.Width + 1) * (b.Height + 1)
}

// Each visits cells column by column (x outer, y inner); returning false
// stops the walk.
func (b Bounds) Each(fn func(p Point) bool) {
	for x := 0; x <= b.Width; x++ {
		for y := 0; y <= b.Height; y++ {
			if !fn(Point{X: x, Y: y}) {
				return
			}
		}
	}
}
