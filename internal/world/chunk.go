package world

import (
	"sync"
	"sync/atomic"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
)

// DefaultChunkSize длина ребра региона в блоках
const DefaultChunkSize = 64

// Chunk хранит плотную сетку типов блоков одного региона.
// Координаты ячеек локальные: 0..size-1 по каждой оси.
type Chunk struct {
	coord  vec.Vec3
	size   int
	blocks []block.BlockType

	dirty  atomic.Bool // сетка изменилась после последнего снимка для меша
	edited atomic.Bool // регион правил игрок, при выгрузке его нужно сохранить

	mu sync.RWMutex
}

// NewChunk создаёт регион, заполненный воздухом
func NewChunk(coord vec.Vec3, size int) *Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &Chunk{
		coord:  coord,
		size:   size,
		blocks: make([]block.BlockType, size*size*size),
	}
}

// Coord координаты региона в сетке мира
func (c *Chunk) Coord() vec.Vec3 {
	return c.coord
}

// Size длина ребра в блоках
func (c *Chunk) Size() int {
	return c.size
}

// InBounds проверяет, лежит ли локальная координата внутри региона
func (c *Chunk) InBounds(x, y, z int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size && z >= 0 && z < c.size
}

func (c *Chunk) index(x, y, z int) int {
	return (x*c.size+y)*c.size + z
}

// Get возвращает тип блока. Для координат вне региона возвращается воздух.
func (c *Chunk) Get(x, y, z int) block.BlockType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.getLocked(x, y, z)
}

// Set записывает тип блока и сообщает, изменилось ли значение.
// Флаг dirty ставится только при реальном изменении.
func (c *Chunk) Set(x, y, z int, t block.BlockType) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setLocked(x, y, z, t)
}

func (c *Chunk) getLocked(x, y, z int) block.BlockType {
	if !c.InBounds(x, y, z) {
		return block.Air
	}
	return c.blocks[c.index(x, y, z)]
}

func (c *Chunk) setLocked(x, y, z int, t block.BlockType) bool {
	if !c.InBounds(x, y, z) {
		return false
	}
	i := c.index(x, y, z)
	if c.blocks[i] == t {
		return false
	}
	c.blocks[i] = t
	c.dirty.Store(true)
	return true
}

// Dirty сообщает, требуется ли пересборка меша
func (c *Chunk) Dirty() bool {
	return c.dirty.Load()
}

// MarkDirty помечает регион для пересборки без изменения сетки
// (например, когда изменился граничный слой соседа)
func (c *Chunk) MarkDirty() {
	c.dirty.Store(true)
}

// Edited сообщает, правился ли регион после генерации
func (c *Chunk) Edited() bool {
	return c.edited.Load()
}

func (c *Chunk) markEdited() {
	c.edited.Store(true)
}

// NonAirCount количество непустых ячеек
func (c *Chunk) NonAirCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, t := range c.blocks {
		if t != block.Air {
			n++
		}
	}
	return n
}

// Snapshot копирует сетку под блокировкой чтения и снимает флаг dirty.
// Правка, пришедшая после снимка, снова поднимет флаг.
func (c *Chunk) Snapshot() *ChunkSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	blocks := make([]block.BlockType, len(c.blocks))
	copy(blocks, c.blocks)
	c.dirty.Store(false)

	return &ChunkSnapshot{coord: c.coord, size: c.size, blocks: blocks}
}

// ChunkSnapshot неизменяемая копия сетки региона для сборки меша
type ChunkSnapshot struct {
	coord  vec.Vec3
	size   int
	blocks []block.BlockType
}

// Coord реализует mesh.Volume
func (s *ChunkSnapshot) Coord() vec.Vec3 { return s.coord }

// Size реализует mesh.Volume
func (s *ChunkSnapshot) Size() int { return s.size }

// Get реализует mesh.Volume
func (s *ChunkSnapshot) Get(x, y, z int) block.BlockType {
	if x < 0 || x >= s.size || y < 0 || y >= s.size || z < 0 || z >= s.size {
		return block.Air
	}
	return s.blocks[(x*s.size+y)*s.size+z]
}
