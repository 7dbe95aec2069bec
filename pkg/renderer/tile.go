package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tile is a rectangular block of pixels rendered as one unit of work
type Tile struct {
	ID     int             // Unique tile identifier, row-major over the grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1) in image coordinates
}

// NewTileGrid splits a width x height image into tiles of at most tileSize pixels per side
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Ceiling division
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// Sampler returns the random sequence for this tile. It depends only on the
// render seed and the tile ID, so results do not depend on scheduling.
func (t *Tile) Sampler(seed int64) core.Sampler {
	return core.NewSeededSampler(seed + int64(t.ID))
}
