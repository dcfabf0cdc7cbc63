package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDivAndMod(t *testing.T) {
	assert.Equal(t, 0, FloorDiv(0, 64))
	assert.Equal(t, 0, FloorDiv(63, 64))
	assert.Equal(t, 1, FloorDiv(64, 64))
	assert.Equal(t, -1, FloorDiv(-1, 64))
	assert.Equal(t, -1, FloorDiv(-64, 64))
	assert.Equal(t, -2, FloorDiv(-65, 64))

	assert.Equal(t, 63, FloorMod(-1, 64))
	assert.Equal(t, 0, FloorMod(-64, 64))
	assert.Equal(t, 5, FloorMod(69, 64))
}

func TestSnapToGrid(t *testing.T) {
	assert.Equal(t, 4, SnapToGrid(7, 4))
	assert.Equal(t, 4, SnapToGrid(4, 4))
	assert.Equal(t, -4, SnapToGrid(-1, 4))
	assert.Equal(t, -8, SnapToGrid(-5, 4))
	// Нулевой шаг оставляет значение как есть
	assert.Equal(t, 13, SnapToGrid(13, 0))

	v := Vec3{X: 5, Y: -3, Z: 11}.SnapToGrid(4)
	assert.Equal(t, Vec3{X: 4, Y: -4, Z: 8}, v)
}

func TestVec3FloatFloorDivScalar(t *testing.T) {
	p := Vec3Float{X: 0.99, Y: -0.01, Z: 2.5}
	assert.Equal(t, Vec3{X: 3, Y: -1, Z: 10}, p.FloorDivScalar(0.25))
}

func TestChebyshevXZ(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: -3, Y: 10, Z: 2}
	assert.Equal(t, 3, a.ChebyshevXZ(b))
}

func TestVec2OnGrid(t *testing.T) {
	assert.True(t, Vec2{X: -16, Y: 32}.OnGrid(16))
	assert.False(t, Vec2{X: -15, Y: 32}.OnGrid(16))
	assert.Equal(t, Vec2{X: -16, Y: 16}, Vec2{X: -1, Y: 31}.SnapToGrid(16))
}
