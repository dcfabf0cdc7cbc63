package main

import (
	"math"
	"time"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world"
)

// simulatedViewer наблюдатель, облетающий мир по окружности над поверхностью
type simulatedViewer struct {
	generator *world.TerrainGenerator
	units     world.BlockMetrics
	radius    float64 // метры
	speed     float64 // метры в секунду
	altitude  float64 // метры над поверхностью
	angle     float64
}

func newSimulatedViewer(generator *world.TerrainGenerator, units world.BlockMetrics, radius, speed float64) *simulatedViewer {
	return &simulatedViewer{
		generator: generator,
		units:     units,
		radius:    radius,
		speed:     speed,
		altitude:  2,
	}
}

// Advance сдвигает наблюдателя на dt и возвращает его позицию в метрах
func (v *simulatedViewer) Advance(dt time.Duration) vec.Vec3Float {
	if v.radius > 0 {
		v.angle += v.speed * dt.Seconds() / v.radius
	}
	return v.Position()
}

// Position текущая позиция в метрах
func (v *simulatedViewer) Position() vec.Vec3Float {
	x := v.radius * math.Cos(v.angle)
	z := v.radius * math.Sin(v.angle)

	b := v.units.WorldToBlock(vec.Vec3Float{X: x, Z: z})
	ground := v.units.BlockToWorld(vec.Vec3{X: b.X, Y: v.generator.SurfaceHeight(b.X, b.Z) + 1, Z: b.Z})
	return vec.Vec3Float{X: x, Y: ground.Y + v.altitude, Z: z}
}
