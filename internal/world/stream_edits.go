package world

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
)

// clusterEdit правка одного кластера в координатах блоков мира
type clusterEdit struct {
	op     string
	anchor vec.Vec3 // минимальный угол, кратный size
	size   int
	place  block.BlockType
}

// TryBreakCluster убирает кластер size×size×size, содержащий точку мира.
// Возвращает true, если изменилась хотя бы одна ячейка.
func (m *StreamManager) TryBreakCluster(pos vec.Vec3Float, size int) bool {
	return m.BreakClusterAt(m.units.WorldToBlock(pos), size)
}

// TryPlaceCluster ставит кластер блоков, содержащий точку мира.
// Операция атомарна: если занята хотя бы одна ячейка, ничего не меняется.
func (m *StreamManager) TryPlaceCluster(pos vec.Vec3Float, size int, t block.BlockType) bool {
	return m.PlaceClusterAt(m.units.WorldToBlock(pos), size, t)
}

// BreakClusterAt то же, что TryBreakCluster, по координате блока
func (m *StreamManager) BreakClusterAt(b vec.Vec3, size int) bool {
	if size < 1 {
		return false
	}
	return m.applyCluster(clusterEdit{op: "break", anchor: b.SnapToGrid(size), size: size, place: block.Air})
}

// PlaceClusterAt то же, что TryPlaceCluster, по координате блока.
// Тип должен быть описан в каталоге; воздух ставить нельзя.
func (m *StreamManager) PlaceClusterAt(b vec.Vec3, size int, t block.BlockType) bool {
	if size < 1 || t == block.Air {
		return false
	}
	m.catalog.MustGet(t)
	return m.applyCluster(clusterEdit{op: "place", anchor: b.SnapToGrid(size), size: size, place: t})
}

// applyCluster применяет правку под блокировками всех затронутых регионов
// и ставит на пересборку каждый изменённый регион и соседей по граням ровно один раз.
func (m *StreamManager) applyCluster(e clusterEdit) bool {
	_, span := m.tracer.Start(context.Background(), "stream.edit."+e.op,
		trace.WithAttributes(
			attribute.Int("anchor.x", e.anchor.X),
			attribute.Int("anchor.y", e.anchor.Y),
			attribute.Int("anchor.z", e.anchor.Z),
			attribute.Int("size", e.size),
		))
	defer span.End()

	changed, touched := m.mutateCluster(e)
	span.SetAttributes(attribute.Bool("changed", changed))

	if !changed {
		m.stats.editsRejected.Add(1)
		m.metrics.edit(e.op, false)
		return false
	}

	for _, coord := range touched {
		m.scheduleMesh(coord)
	}

	m.stats.editsApplied.Add(1)
	m.metrics.edit(e.op, true)
	m.logger.Debug("%s кластера %d в %v: на пересборку %d регионов", e.op, e.size, e.anchor, len(touched))
	return true
}

// mutateCluster меняет сетки. Возвращает признак изменения и отсортированный
// список регионов для пересборки.
func (m *StreamManager) mutateCluster(e clusterEdit) (bool, []vec.Vec3) {
	size := m.cfg.ChunkSize
	minChunk := e.anchor.FloorDiv(size)
	maxChunk := e.anchor.Add(vec.Vec3{X: e.size - 1, Y: e.size - 1, Z: e.size - 1}).FloorDiv(size)

	// Карта держится на чтение всю правку, чтобы регион не выгрузили посередине
	m.chunksMu.RLock()
	defer m.chunksMu.RUnlock()

	var chunks []*Chunk
	for x := minChunk.X; x <= maxChunk.X; x++ {
		for y := minChunk.Y; y <= maxChunk.Y; y++ {
			for z := minChunk.Z; z <= maxChunk.Z; z++ {
				c, ok := m.chunks[vec.Vec3{X: x, Y: y, Z: z}]
				if !ok {
					// Нет целевого региона: правка отклоняется целиком
					return false, nil
				}
				chunks = append(chunks, c)
			}
		}
	}

	// Блокируем регионы в одном порядке, чтобы исключить взаимную блокировку
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Coord().Less(chunks[j].Coord()) })
	for _, c := range chunks {
		c.mu.Lock()
	}
	defer func() {
		for _, c := range chunks {
			c.mu.Unlock()
		}
	}()

	byCoord := make(map[vec.Vec3]*Chunk, len(chunks))
	for _, c := range chunks {
		byCoord[c.Coord()] = c
	}

	forEachCell := func(fn func(c *Chunk, local vec.Vec3) bool) bool {
		for dx := 0; dx < e.size; dx++ {
			for dy := 0; dy < e.size; dy++ {
				for dz := 0; dz < e.size; dz++ {
					b := e.anchor.Add(vec.Vec3{X: dx, Y: dy, Z: dz})
					coord, local := b.FloorDiv(size), b.FloorMod(size)
					if !fn(byCoord[coord], local) {
						return false
					}
				}
			}
		}
		return true
	}

	if e.op == "place" {
		free := forEachCell(func(c *Chunk, l vec.Vec3) bool {
			return c.getLocked(l.X, l.Y, l.Z) == block.Air
		})
		if !free {
			return false, nil
		}
	}

	touched := make(map[vec.Vec3]struct{})
	changed := false
	forEachCell(func(c *Chunk, l vec.Vec3) bool {
		if !c.setLocked(l.X, l.Y, l.Z, e.place) {
			return true
		}
		changed = true
		c.markEdited()
		touched[c.Coord()] = struct{}{}

		// Ячейка на грани региона: сосед по этой грани тоже пересобирается
		for face, dir := range vec.FaceDirections {
			if onFace(l, size, block.Face(face)) {
				touched[c.Coord().Add(dir)] = struct{}{}
			}
		}
		return true
	})

	if !changed {
		return false, nil
	}

	coords := make([]vec.Vec3, 0, len(touched))
	for coord := range touched {
		if nb, ok := m.chunks[coord]; ok {
			nb.MarkDirty()
			coords = append(coords, coord)
		}
	}
	sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })
	return true, coords
}

// onFace сообщает, лежит ли локальная ячейка на указанной грани региона
func onFace(l vec.Vec3, size int, face block.Face) bool {
	switch face {
	case block.FacePosX:
		return l.X == size-1
	case block.FaceNegX:
		return l.X == 0
	case block.FacePosY:
		return l.Y == size-1
	case block.FaceNegY:
		return l.Y == 0
	case block.FacePosZ:
		return l.Z == size-1
	case block.FaceNegZ:
		return l.Z == 0
	}
	return false
}
