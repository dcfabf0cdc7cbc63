package world

import (
	"testing"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkNewIsAllAir(t *testing.T) {
	c := NewChunk(vec.Vec3{X: 1, Y: 0, Z: -2}, 8)

	assert.Equal(t, 8, c.Size())
	assert.Equal(t, vec.Vec3{X: 1, Y: 0, Z: -2}, c.Coord())
	assert.Equal(t, 0, c.NonAirCount())
	assert.False(t, c.Dirty())
	assert.False(t, c.Edited())
}

func TestChunkDefaultSize(t *testing.T) {
	c := NewChunk(vec.Vec3{}, 0)
	assert.Equal(t, DefaultChunkSize, c.Size())
}

func TestChunkSetGetRoundTrip(t *testing.T) {
	c := NewChunk(vec.Vec3{}, 8)

	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			for z := 0; z < 8; z++ {
				bt := block.BlockType(1 + (x+y+z)%4)
				require.True(t, c.Set(x, y, z, bt))
				require.Equal(t, bt, c.Get(x, y, z))
			}
		}
	}
	assert.Equal(t, 512, c.NonAirCount())
}

func TestChunkSetSameValueIsNoop(t *testing.T) {
	c := NewChunk(vec.Vec3{}, 8)

	assert.True(t, c.Set(1, 2, 3, block.Stone))
	c.Snapshot() // снимает dirty
	require.False(t, c.Dirty())

	assert.False(t, c.Set(1, 2, 3, block.Stone), "повторная запись того же значения")
	assert.False(t, c.Dirty())

	// Запись воздуха в пустую ячейку тоже ничего не меняет
	assert.False(t, c.Set(0, 0, 0, block.Air))
	assert.False(t, c.Dirty())
}

func TestChunkOutOfBounds(t *testing.T) {
	c := NewChunk(vec.Vec3{}, 8)

	assert.Equal(t, block.Air, c.Get(-1, 0, 0))
	assert.Equal(t, block.Air, c.Get(0, 8, 0))
	assert.Equal(t, block.Air, c.Get(0, 0, 100))

	assert.False(t, c.Set(8, 0, 0, block.Stone))
	assert.False(t, c.Set(0, -1, 0, block.Stone))
	assert.False(t, c.Dirty())
}

func TestChunkSnapshotIsIsolated(t *testing.T) {
	c := NewChunk(vec.Vec3{X: 2}, 8)
	c.Set(1, 1, 1, block.Dirt)
	require.True(t, c.Dirty())

	snap := c.Snapshot()
	assert.False(t, c.Dirty())

	c.Set(1, 1, 1, block.Stone)
	assert.True(t, c.Dirty())

	assert.Equal(t, block.Dirt, snap.Get(1, 1, 1))
	assert.Equal(t, block.Air, snap.Get(9, 1, 1))
	assert.Equal(t, vec.Vec3{X: 2}, snap.Coord())
	assert.Equal(t, 8, snap.Size())
}

func TestChunkMarkDirty(t *testing.T) {
	c := NewChunk(vec.Vec3{}, 4)
	c.MarkDirty()
	assert.True(t, c.Dirty())
}

func TestChunkCodec(t *testing.T) {
	c := NewChunk(vec.Vec3{X: -3, Y: 1, Z: 7}, 4)
	c.Set(0, 0, 0, block.Grass)
	c.Set(3, 3, 3, block.OakLeaves)

	data, err := c.MarshalBinary()
	require.NoError(t, err)

	decoded, err := DecodeChunk(data)
	require.NoError(t, err)

	assert.Equal(t, c.Coord(), decoded.Coord())
	assert.Equal(t, 4, decoded.Size())
	assert.Equal(t, block.Grass, decoded.Get(0, 0, 0))
	assert.Equal(t, block.OakLeaves, decoded.Get(3, 3, 3))
	assert.True(t, decoded.Dirty())
	assert.True(t, decoded.Edited())
	assert.NoError(t, decoded.validateTypes(block.NewDefaultCatalog()))
}

func TestChunkCodecRejectsGarbage(t *testing.T) {
	_, err := DecodeChunk([]byte("nope"))
	assert.ErrorIs(t, err, ErrDecode)

	c := NewChunk(vec.Vec3{}, 4)
	data, err := c.MarshalBinary()
	require.NoError(t, err)

	_, err = DecodeChunk(data[:len(data)-2])
	assert.ErrorIs(t, err, ErrDecode)

	bad := append([]byte(nil), data...)
	bad[0] = 'X'
	_, err = DecodeChunk(bad)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestChunkValidateTypes(t *testing.T) {
	c := NewChunk(vec.Vec3{}, 4)
	c.Set(1, 1, 1, block.BlockType(500))

	err := c.validateTypes(block.NewDefaultCatalog())
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, block.ErrUndefinedType)
}
