package util

import (
	"github.com/aquilax/go-perlin"
)

// NoiseSource канал шума, возвращающий значение в диапазоне [-1, 1]
// для мировых координат столбца.
type NoiseSource interface {
	Sample(x, z float64) float64
}

// NoiseFunc адаптер функции к NoiseSource
type NoiseFunc func(x, z float64) float64

// Sample реализует NoiseSource
func (f NoiseFunc) Sample(x, z float64) float64 {
	return f(x, z)
}

// Constant канал, возвращающий одно и то же значение
func Constant(v float64) NoiseSource {
	v = clamp(v)
	return NoiseFunc(func(x, z float64) float64 { return v })
}

// PerlinChannel канал шума Перлина с собственной частотой и числом октав.
// После создания только читается и безопасен для параллельных вызовов.
type PerlinChannel struct {
	noise     *perlin.Perlin
	frequency float64
}

// NewPerlinChannel создаёт канал шума Перлина
func NewPerlinChannel(seed int64, frequency float64, octaves int) *PerlinChannel {
	alpha := 2.0 // Сглаживание шума
	beta := 2.0  // Частота между октавами
	if octaves < 1 {
		octaves = 1
	}
	if frequency <= 0 {
		frequency = 0.01
	}
	return &PerlinChannel{
		noise:     perlin.NewPerlin(alpha, beta, int32(octaves), seed),
		frequency: frequency,
	}
}

// Sample возвращает значение шума в точке мира, приведённое к [-1, 1]
func (p *PerlinChannel) Sample(x, z float64) float64 {
	return clamp(p.noise.Noise2D(x*p.frequency, z*p.frequency))
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
