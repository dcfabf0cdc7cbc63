package world

import "github.com/annel0/voxel-core/internal/vec"

const (
	// DefaultBlockSize длина ребра блока в метрах
	DefaultBlockSize = 0.25
	// DefaultClusterSize одиночный блок
	DefaultClusterSize = 1
	// LargeClusterSize кластер размером в один метр
	LargeClusterSize = 4
)

// BlockMetrics переводит мировые координаты в метрах в координаты блоков и регионов
type BlockMetrics struct {
	BlockSize float64 // метров на блок
	ChunkSize int     // блоков на ребро региона
}

// DefaultBlockMetrics метрика по умолчанию: блок 0.25 м, регион 64 блока
func DefaultBlockMetrics() BlockMetrics {
	return BlockMetrics{BlockSize: DefaultBlockSize, ChunkSize: DefaultChunkSize}
}

// BlocksPerMeter количество блоков в одном метре
func (m BlockMetrics) BlocksPerMeter() int {
	return int(1/m.BlockSize + 0.5)
}

// WorldToBlock возвращает координату блока, содержащего точку мира
func (m BlockMetrics) WorldToBlock(pos vec.Vec3Float) vec.Vec3 {
	return pos.FloorDivScalar(m.BlockSize)
}

// BlockToWorld возвращает мировую позицию минимального угла блока
func (m BlockMetrics) BlockToWorld(b vec.Vec3) vec.Vec3Float {
	return b.ToFloat().Mul(m.BlockSize)
}

// BlockToChunk возвращает координаты региона и локальную позицию блока в нём
func (m BlockMetrics) BlockToChunk(b vec.Vec3) (vec.Vec3, vec.Vec3) {
	return b.FloorDiv(m.ChunkSize), b.FloorMod(m.ChunkSize)
}

// WorldToChunk возвращает координаты региона, содержащего точку мира
func (m BlockMetrics) WorldToChunk(pos vec.Vec3Float) vec.Vec3 {
	chunk, _ := m.BlockToChunk(m.WorldToBlock(pos))
	return chunk
}
