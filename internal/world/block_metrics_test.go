package world

import (
	"testing"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestBlockMetrics(t *testing.T) {
	m := DefaultBlockMetrics()

	assert.Equal(t, 4, m.BlocksPerMeter())

	assert.Equal(t, vec.Vec3{X: 4, Y: 0, Z: -1}, m.WorldToBlock(vec.Vec3Float{X: 1.1, Y: 0.2, Z: -0.1}))
	assert.Equal(t, vec.Vec3Float{X: 1, Y: 0.5, Z: -0.25}, m.BlockToWorld(vec.Vec3{X: 4, Y: 2, Z: -1}))

	chunk, local := m.BlockToChunk(vec.Vec3{X: -1, Y: 64, Z: 130})
	assert.Equal(t, vec.Vec3{X: -1, Y: 1, Z: 2}, chunk)
	assert.Equal(t, vec.Vec3{X: 63, Y: 0, Z: 2}, local)

	assert.Equal(t, vec.Vec3{X: -1, Y: 0, Z: 1}, m.WorldToChunk(vec.Vec3Float{X: -0.01, Y: 3, Z: 17}))
}
