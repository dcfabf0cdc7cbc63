package mesh

import (
	"testing"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtlasTileUV(t *testing.T) {
	atlas, err := NewAtlas(1, 9)
	require.NoError(t, err)

	r := atlas.TileUV(2)
	assert.InDelta(t, 0.0, r.MinU, 1e-6)
	assert.InDelta(t, 1.0, r.MaxU, 1e-6)
	assert.InDelta(t, 2.0/9.0, r.MinV, 1e-6)
	assert.InDelta(t, 3.0/9.0, r.MaxV, 1e-6)

	grid, err := NewAtlas(4, 4)
	require.NoError(t, err)
	r = grid.TileUV(5) // колонка 1, строка 1
	assert.InDelta(t, 0.25, r.MinU, 1e-6)
	assert.InDelta(t, 0.25, r.MinV, 1e-6)
	assert.InDelta(t, 0.5, r.MaxU, 1e-6)
	assert.InDelta(t, 0.5, r.MaxV, 1e-6)
}

func TestAtlasRejectsEmptyGrid(t *testing.T) {
	_, err := NewAtlas(0, 4)
	assert.Error(t, err)
}

func TestAtlasSubTileUV(t *testing.T) {
	atlas, _ := NewAtlas(2, 2)

	r := atlas.SubTileUV(0, 4, 3, 1)
	assert.InDelta(t, 0.375, r.MinU, 1e-6)
	assert.InDelta(t, 0.5, r.MaxU, 1e-6)
	assert.InDelta(t, 0.125, r.MinV, 1e-6)
	assert.InDelta(t, 0.25, r.MaxV, 1e-6)

	// Индексы за пределами диапазона приводятся к краю
	clamped := atlas.SubTileUV(0, 4, 10, -2)
	assert.Equal(t, atlas.SubTileUV(0, 4, 3, 0), clamped)
}

func TestSubTileIsPureAndInRange(t *testing.T) {
	region := vec.Vec3{X: -2, Y: 0, Z: 5}
	seen := make(map[[2]int]struct{})

	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			sx, sy := SubTile(region, x, 3, z, 4)
			assert.GreaterOrEqual(t, sx, 0)
			assert.Less(t, sx, 4)
			assert.GreaterOrEqual(t, sy, 0)
			assert.Less(t, sy, 4)

			sx2, sy2 := SubTile(region, x, 3, z, 4)
			assert.Equal(t, sx, sx2)
			assert.Equal(t, sy, sy2)
			seen[[2]int{sx, sy}] = struct{}{}
		}
	}

	assert.Greater(t, len(seen), 1, "хеш должен давать разные под-тайлы")

	sx, sy := SubTile(region, 1, 1, 1, 1)
	assert.Equal(t, 0, sx)
	assert.Equal(t, 0, sy)
}
