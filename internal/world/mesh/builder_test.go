package mesh

import (
	"math"
	"testing"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testVolume простая сетка для тестов сборщика
type testVolume struct {
	coord  vec.Vec3
	size   int
	blocks map[vec.Vec3]block.BlockType
}

func newTestVolume(size int) *testVolume {
	return &testVolume{size: size, blocks: make(map[vec.Vec3]block.BlockType)}
}

func (v *testVolume) Coord() vec.Vec3 { return v.coord }
func (v *testVolume) Size() int       { return v.size }

func (v *testVolume) Get(x, y, z int) block.BlockType {
	return v.blocks[vec.Vec3{X: x, Y: y, Z: z}]
}

func (v *testVolume) set(x, y, z int, t block.BlockType) {
	v.blocks[vec.Vec3{X: x, Y: y, Z: z}] = t
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	atlas, err := NewAtlas(1, block.DefaultTileCount)
	require.NoError(t, err)
	return NewBuilder(block.NewDefaultCatalog(), atlas, Options{BlockSize: 0.25, SubtileDivisions: 4})
}

func TestBuildSingleOpaqueBlock(t *testing.T) {
	b := newTestBuilder(t)
	vol := newTestVolume(4)
	vol.set(1, 1, 1, block.Stone)

	s, err := b.Build(vol, NoNeighbors)
	require.NoError(t, err)

	assert.Equal(t, 6, s.FaceCount())
	assert.Equal(t, 24, s.Opaque.VertexCount())
	assert.Len(t, s.Opaque.Indices, 36)
	assert.True(t, s.Transparent.Empty())
}

func TestBuildCullsFaceBetweenOpaqueBlocks(t *testing.T) {
	b := newTestBuilder(t)
	vol := newTestVolume(4)
	vol.set(1, 1, 1, block.Stone)
	vol.set(2, 1, 1, block.Dirt)

	s, err := b.Build(vol, NoNeighbors)
	require.NoError(t, err)

	// Общая грань не рисуется ни с одной стороны
	assert.Equal(t, 10, s.FaceCount())
}

func TestBuildTransparentNeighbours(t *testing.T) {
	b := newTestBuilder(t)

	t.Run("одинаковая листва", func(t *testing.T) {
		vol := newTestVolume(4)
		vol.set(1, 1, 1, block.OakLeaves)
		vol.set(1, 2, 1, block.OakLeaves)

		s, err := b.Build(vol, NoNeighbors)
		require.NoError(t, err)
		assert.True(t, s.Opaque.Empty())
		assert.Equal(t, 10, s.Transparent.TriangleCount()/2)
	})

	t.Run("листва рядом с камнем", func(t *testing.T) {
		vol := newTestVolume(4)
		vol.set(1, 1, 1, block.OakLeaves)
		vol.set(2, 1, 1, block.Stone)

		s, err := b.Build(vol, NoNeighbors)
		require.NoError(t, err)
		// Камень рисует грань к листве, листва к камню нет
		assert.Equal(t, 6, s.Opaque.TriangleCount()/2)
		assert.Equal(t, 5, s.Transparent.TriangleCount()/2)
	})
}

func TestBuildUsesNeighborLookupAtBoundary(t *testing.T) {
	b := newTestBuilder(t)
	vol := newTestVolume(4)
	vol.set(3, 0, 0, block.Stone)

	// Соседний регион не загружен: грань на границе рисуется
	s, err := b.Build(vol, NoNeighbors)
	require.NoError(t, err)
	assert.Equal(t, 6, s.FaceCount())

	// Сосед по +X непрозрачный: грань отсекается
	solidPosX := NeighborFunc(func(x, y, z int) (block.BlockType, bool) {
		if x == 4 {
			return block.Stone, true
		}
		return block.Air, true
	})
	s, err = b.Build(vol, solidPosX)
	require.NoError(t, err)
	assert.Equal(t, 5, s.FaceCount())
}

func TestBuildUndefinedBlockAborts(t *testing.T) {
	b := newTestBuilder(t)
	vol := newTestVolume(4)
	vol.set(0, 0, 0, block.Stone)
	vol.set(2, 2, 2, block.BlockType(999))

	s, err := b.Build(vol, NoNeighbors)
	assert.ErrorIs(t, err, ErrUndefinedBlock)
	assert.Nil(t, s, "частичная поверхность не должна возвращаться")
}

func TestBuildIsDeterministic(t *testing.T) {
	b := newTestBuilder(t)
	vol := newTestVolume(8)
	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			vol.set(x, 0, z, block.Grass)
			if (x+z)%3 == 0 {
				vol.set(x, 1, z, block.OakLeaves)
			}
		}
	}

	first, err := b.Build(vol, NoNeighbors)
	require.NoError(t, err)
	second, err := b.Build(vol, NoNeighbors)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildWindingMatchesNormals(t *testing.T) {
	b := newTestBuilder(t)
	vol := newTestVolume(4)
	vol.set(1, 1, 1, block.Debug)

	s, err := b.Build(vol, NoNeighbors)
	require.NoError(t, err)

	pos := func(i uint32) [3]float64 {
		p := s.Opaque.Positions[i*3 : i*3+3]
		return [3]float64{float64(p[0]), float64(p[1]), float64(p[2])}
	}

	for tri := 0; tri < s.Opaque.TriangleCount(); tri++ {
		i0, i1, i2 := s.Opaque.Indices[tri*3], s.Opaque.Indices[tri*3+1], s.Opaque.Indices[tri*3+2]
		a, bb, c := pos(i0), pos(i1), pos(i2)
		e1 := [3]float64{bb[0] - a[0], bb[1] - a[1], bb[2] - a[2]}
		e2 := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		cross := [3]float64{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		length := math.Sqrt(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])
		require.Greater(t, length, 0.0)

		n := s.Opaque.Normals[i0*3 : i0*3+3]
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, float64(n[axis]), cross[axis]/length, 1e-6, "треугольник %d смотрит внутрь", tri)
		}
	}
}

func TestLocalUVTable(t *testing.T) {
	// +Y: U=x, V=1-z
	u, v := LocalUV(block.FacePosY, [3]float32{1, 1, 0})
	assert.Equal(t, float32(1), u)
	assert.Equal(t, float32(1), v)

	// -X: U отражён (1-z)
	u, v = LocalUV(block.FaceNegX, [3]float32{0, 0, 1})
	assert.Equal(t, float32(0), u)
	assert.Equal(t, float32(1), v)

	// +X: U=z, V=1-y
	u, v = LocalUV(block.FacePosX, [3]float32{1, 1, 1})
	assert.Equal(t, float32(1), u)
	assert.Equal(t, float32(0), v)

	// -Y: U=x, V=z
	u, v = LocalUV(block.FaceNegY, [3]float32{1, 0, 1})
	assert.Equal(t, float32(1), u)
	assert.Equal(t, float32(1), v)

	// +Z: U=x, V=1-y
	u, v = LocalUV(block.FacePosZ, [3]float32{0, 1, 1})
	assert.Equal(t, float32(0), u)
	assert.Equal(t, float32(0), v)

	// -Z: U=1-x, V=1-y
	u, v = LocalUV(block.FaceNegZ, [3]float32{1, 0, 0})
	assert.Equal(t, float32(0), u)
	assert.Equal(t, float32(1), v)
}

func TestBuildUVsStayInsideTile(t *testing.T) {
	b := newTestBuilder(t)
	vol := newTestVolume(4)
	vol.set(0, 0, 0, block.Debug) // без вариации, каждая грань свой тайл

	s, err := b.Build(vol, NoNeighbors)
	require.NoError(t, err)

	// Debug: грань i использует тайл i, вертикальная полоса 1×9
	for face := 0; face < block.FaceCount; face++ {
		minV := float32(face) / float32(block.DefaultTileCount)
		maxV := float32(face+1) / float32(block.DefaultTileCount)
		for corner := 0; corner < 4; corner++ {
			vi := face*4 + corner
			u := s.Opaque.UVs[vi*2]
			v := s.Opaque.UVs[vi*2+1]
			assert.GreaterOrEqual(t, u, float32(0))
			assert.LessOrEqual(t, u, float32(1))
			assert.GreaterOrEqual(t, v, minV-1e-6)
			assert.LessOrEqual(t, v, maxV+1e-6)
		}
	}
}

func TestBuildOriginAndScale(t *testing.T) {
	b := newTestBuilder(t)
	vol := newTestVolume(4)
	vol.coord = vec.Vec3{X: 1, Y: 0, Z: -1}
	vol.set(3, 3, 3, block.Stone)

	s, err := b.Build(vol, NoNeighbors)
	require.NoError(t, err)

	assert.Equal(t, vec.Vec3{X: 1, Y: 0, Z: -1}, s.Region)
	assert.Equal(t, vec.Vec3Float{X: 1, Y: 0, Z: -1}, s.Origin)
	for _, p := range s.Opaque.Positions {
		assert.GreaterOrEqual(t, p, float32(0.75))
		assert.LessOrEqual(t, p, float32(1.0))
	}
}

func TestStreamExpand(t *testing.T) {
	b := newTestBuilder(t)
	vol := newTestVolume(4)
	vol.set(0, 0, 0, block.Stone)

	s, err := b.Build(vol, NoNeighbors)
	require.NoError(t, err)

	flat := s.Opaque.Expand()
	assert.Len(t, flat, 36*3)
}

func TestBuildEmptyVolume(t *testing.T) {
	b := newTestBuilder(t)
	s, err := b.Build(newTestVolume(4), nil)
	require.NoError(t, err)
	assert.True(t, s.Empty())
}
