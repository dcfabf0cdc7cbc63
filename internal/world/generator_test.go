package world

import (
	"testing"

	"github.com/annel0/voxel-core/internal/util"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFlatTerrain(t *testing.T) {
	gen := NewTerrainGenerator(DefaultTerrainConfig(), FlatChannels())
	c := NewChunk(vec.Vec3{}, DefaultChunkSize)
	gen.Generate(c)

	for x := 0; x < c.Size(); x++ {
		for z := 0; z < c.Size(); z++ {
			top := -1
			for y := c.Size() - 1; y >= 0; y-- {
				if c.Get(x, y, z) != block.Air {
					top = y
					break
				}
			}
			require.Equal(t, 20, top, "столбец %d,%d", x, z)
			require.Equal(t, block.Grass, c.Get(x, 20, z))
			require.Equal(t, block.Dirt, c.Get(x, 17, z))
			require.Equal(t, block.Stone, c.Get(x, 16, z))
			require.Equal(t, block.Stone, c.Get(x, 0, z))
		}
	}
	assert.Equal(t, 20, gen.SurfaceHeight(-100, 37))
}

func TestGenerateVerticalNeighbours(t *testing.T) {
	gen := NewTerrainGenerator(DefaultTerrainConfig(), FlatChannels())

	// Регион 16..31 содержит поверхность на y=20: слои 16..20
	surface := NewChunk(vec.Vec3{Y: 1}, 16)
	gen.Generate(surface)
	assert.Equal(t, 5*16*16, surface.NonAirCount())
	assert.Equal(t, block.Grass, surface.Get(3, 4, 3))
	assert.Equal(t, block.Air, surface.Get(3, 5, 3))

	above := NewChunk(vec.Vec3{Y: 2}, 16)
	gen.Generate(above)
	assert.Equal(t, 0, above.NonAirCount())

	below := NewChunk(vec.Vec3{Y: -1}, 16)
	gen.Generate(below)
	assert.Equal(t, 16*16*16, below.NonAirCount())
	assert.Equal(t, block.Stone, below.Get(5, 15, 5))
}

func TestGenerateMaterialBands(t *testing.T) {
	channels := FlatChannels()
	channels.Material = util.Constant(0.9)
	channels.Rock = util.Constant(0.9)
	channels.TreeDensity = util.Constant(1)

	gen := NewTerrainGenerator(DefaultTerrainConfig(), channels)
	c := NewChunk(vec.Vec3{}, 32)
	gen.Generate(c)

	assert.Equal(t, block.Stone, c.Get(3, 20, 3), "поверхность по порогу камня")
	assert.Equal(t, block.Dirt, c.Get(3, 19, 3))
	assert.Equal(t, block.Cobblestone, c.Get(3, 16, 3), "глубинный скальный вариант")
	assert.Equal(t, block.Air, c.Get(0, 21, 0), "деревья растут только на траве")

	channels.Material = util.Constant(-0.9)
	gen = NewTerrainGenerator(DefaultTerrainConfig(), channels)
	c = NewChunk(vec.Vec3{}, 32)
	gen.Generate(c)
	assert.Equal(t, block.Cobblestone, c.Get(3, 20, 3))
}

func TestGenerateTreesOnSpacingGrid(t *testing.T) {
	cfg := DefaultTerrainConfig()
	cfg.TreeThreshold = -2

	gen := NewTerrainGenerator(cfg, FlatChannels())
	c := NewChunk(vec.Vec3{}, DefaultChunkSize)
	gen.Generate(c)

	logColumns := 0
	for x := 0; x < c.Size(); x++ {
		for z := 0; z < c.Size(); z++ {
			trunk := 0
			for y := 0; y < c.Size(); y++ {
				if c.Get(x, y, z) == block.OakLog {
					trunk++
				}
			}
			if trunk == 0 {
				continue
			}
			logColumns++
			assert.Zero(t, x%cfg.TreeSpacing, "ствол вне сетки деревьев: %d,%d", x, z)
			assert.Zero(t, z%cfg.TreeSpacing, "ствол вне сетки деревьев: %d,%d", x, z)
			assert.GreaterOrEqual(t, trunk, cfg.TrunkMin)
			assert.LessOrEqual(t, trunk, cfg.TrunkMax)
			assert.Equal(t, block.OakLog, c.Get(x, 21, z), "ствол начинается над поверхностью")
		}
	}
	assert.Equal(t, 16, logColumns)

	// Листва вокруг верхушки ствола
	top := 21
	for c.Get(16, top+1, 16) == block.OakLog {
		top++
	}
	assert.Equal(t, block.OakLeaves, c.Get(17, top, 16))
	assert.Equal(t, block.OakLeaves, c.Get(16, top+1, 16))
}

func TestGenerateIsSeamlessAcrossRegions(t *testing.T) {
	cfg := DefaultTerrainConfig()
	cfg.BaseHeight = 8
	cfg.HeightAmplitude = 4
	cfg.DetailAmplitude = 1
	cfg.TreeThreshold = -2
	cfg.TreeSpacing = 8
	cfg.TrunkMin = 3
	cfg.TrunkMax = 5
	cfg.CanopyRadius = 3

	channels := NewPerlinChannels(cfg)
	channels.Material = util.Constant(0)
	gen := NewTerrainGenerator(cfg, channels)

	whole := NewChunk(vec.Vec3{}, 32)
	gen.Generate(whole)

	for _, coord := range []vec.Vec3{{X: 0, Z: 0}, {X: 1, Z: 0}, {X: 0, Z: 1}, {X: 1, Z: 1}, {X: 0, Y: 1, Z: 0}} {
		part := NewChunk(coord, 16)
		gen.Generate(part)
		for x := 0; x < 16; x++ {
			for y := 0; y < 16; y++ {
				for z := 0; z < 16; z++ {
					wx, wy, wz := coord.X*16+x, coord.Y*16+y, coord.Z*16+z
					require.Equal(t, whole.Get(wx, wy, wz), part.Get(x, y, z),
						"регион %v, ячейка %d,%d,%d", coord, x, y, z)
				}
			}
		}
	}
}

func TestGenerateClusterStepping(t *testing.T) {
	cfg := DefaultTerrainConfig()
	channels := FlatChannels()
	channels.Height = util.NoiseFunc(func(x, z float64) float64 {
		return x / 100
	})
	gen := NewTerrainGenerator(cfg, channels)

	// Все столбцы одного кластера получают высоту точки выборки
	for wx := 40; wx < 44; wx++ {
		assert.Equal(t, gen.SurfaceHeight(40, 0), gen.SurfaceHeight(wx, 3))
	}
	assert.NotEqual(t, gen.SurfaceHeight(40, 0), gen.SurfaceHeight(-40, 0))
}
