package mesh

import (
	"errors"
	"fmt"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
)

// ErrUndefinedBlock сборка прервана из-за блока без описания в каталоге
var ErrUndefinedBlock = errors.New("mesh: block has no catalog definition")

// Volume read-only представление сетки одного региона
type Volume interface {
	Coord() vec.Vec3
	Size() int
	Get(x, y, z int) block.BlockType
}

// NeighborLookup разрешает ячейки за пределами региона.
// Координаты локальные относительно собираемого региона (например -1 или size).
// ok=false означает, что соседний регион не загружен.
type NeighborLookup interface {
	Neighbor(x, y, z int) (block.BlockType, bool)
}

// NeighborFunc адаптер функции к NeighborLookup
type NeighborFunc func(x, y, z int) (block.BlockType, bool)

// Neighbor реализует NeighborLookup
func (f NeighborFunc) Neighbor(x, y, z int) (block.BlockType, bool) {
	return f(x, y, z)
}

// NoNeighbors считает все соседние регионы незагруженными
var NoNeighbors = NeighborFunc(func(x, y, z int) (block.BlockType, bool) {
	return block.Air, false
})

var faceNormals = [block.FaceCount][3]float32{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// Углы грани единичного куба. Порядок подобран так, что треугольники
// {0,2,1} и {0,3,2} идут против часовой стрелки, если смотреть снаружи.
var faceCorners = [block.FaceCount][4][3]float32{
	// +X
	{{1, 0, 0}, {1, 0, 1}, {1, 1, 1}, {1, 1, 0}},
	// -X
	{{0, 0, 1}, {0, 0, 0}, {0, 1, 0}, {0, 1, 1}},
	// +Y
	{{0, 1, 1}, {0, 1, 0}, {1, 1, 0}, {1, 1, 1}},
	// -Y
	{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}},
	// +Z
	{{0, 0, 1}, {0, 1, 1}, {1, 1, 1}, {1, 0, 1}},
	// -Z
	{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0, 0, 0}},
}

// TriangleOrder индексы двух треугольников грани относительно её четырёх углов
var TriangleOrder = [6]uint32{0, 2, 1, 0, 3, 2}

// LocalUV отображает угол p единичного куба в локальные u/v грани.
// Таблица фиксирована: отражения подобраны так, чтобы "верх" текстуры
// совпадал на всех шести гранях.
func LocalUV(face block.Face, p [3]float32) (float32, float32) {
	switch face {
	case block.FacePosX:
		return p[2], 1 - p[1]
	case block.FaceNegX:
		return 1 - p[2], 1 - p[1]
	case block.FacePosY:
		return p[0], 1 - p[2]
	case block.FaceNegY:
		return p[0], p[2]
	case block.FacePosZ:
		return p[0], 1 - p[1]
	case block.FaceNegZ:
		return 1 - p[0], 1 - p[1]
	default:
		return p[0], p[1]
	}
}

// Options параметры сборки
type Options struct {
	BlockSize        float32 // длина ребра блока в метрах
	SubtileDivisions int     // N для вариации N×N внутри тайла
}

// Builder собирает поверхности регионов. Не хранит состояния между вызовами
// и безопасен для параллельного использования.
type Builder struct {
	catalog *block.Catalog
	atlas   Atlas
	opts    Options
}

// NewBuilder создаёт сборщик поверхностей
func NewBuilder(catalog *block.Catalog, atlas Atlas, opts Options) *Builder {
	if opts.BlockSize <= 0 {
		opts.BlockSize = 1
	}
	if opts.SubtileDivisions < 1 {
		opts.SubtileDivisions = 1
	}
	return &Builder{catalog: catalog, atlas: atlas, opts: opts}
}

// Build обходит сетку региона, отбрасывает скрытые грани и строит два
// потока треугольников (непрозрачный и прозрачный). Блок без описания
// прерывает сборку целиком.
func (b *Builder) Build(vol Volume, neighbors NeighborLookup) (*Surface, error) {
	if neighbors == nil {
		neighbors = NoNeighbors
	}

	coord := vol.Coord()
	size := vol.Size()
	regionMeters := float64(size) * float64(b.opts.BlockSize)
	surface := &Surface{
		Region: coord,
		Origin: coord.ToFloat().Mul(regionMeters),
	}

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			for z := 0; z < size; z++ {
				bt := vol.Get(x, y, z)
				if bt == block.Air {
					continue
				}

				def, ok := b.catalog.Lookup(bt)
				if !ok {
					return nil, fmt.Errorf("%w: %s at %d,%d,%d in region %v", ErrUndefinedBlock, bt, x, y, z, coord)
				}

				stream := &surface.Opaque
				if def.IsTransparent() {
					stream = &surface.Transparent
				}

				subX, subY := 0, 0
				if def.CanSubdivide {
					subX, subY = SubTile(coord, x, y, z, b.opts.SubtileDivisions)
				}

				for face := block.Face(0); face < block.FaceCount; face++ {
					draw, err := b.shouldDrawFace(vol, neighbors, x, y, z, face, def)
					if err != nil {
						return nil, err
					}
					if !draw {
						continue
					}
					b.addFace(stream, x, y, z, face, def, subX, subY)
				}
			}
		}
	}

	return surface, nil
}

// shouldDrawFace правило отсечения: грань рисуется, если сосед воздух,
// прозрачный блок другого типа или лежит за пределами загруженных регионов.
func (b *Builder) shouldDrawFace(vol Volume, neighbors NeighborLookup, x, y, z int, face block.Face, def block.Definition) (bool, error) {
	dir := vec.FaceDirections[face]
	nx, ny, nz := x+dir.X, y+dir.Y, z+dir.Z
	size := vol.Size()

	var nt block.BlockType
	if nx >= 0 && nx < size && ny >= 0 && ny < size && nz >= 0 && nz < size {
		nt = vol.Get(nx, ny, nz)
	} else {
		t, loaded := neighbors.Neighbor(nx, ny, nz)
		if !loaded {
			return true, nil
		}
		nt = t
	}

	if nt == block.Air {
		return true, nil
	}

	ndef, ok := b.catalog.Lookup(nt)
	if !ok {
		return false, fmt.Errorf("%w: neighbour %s of %d,%d,%d in region %v", ErrUndefinedBlock, nt, x, y, z, vol.Coord())
	}
	return ndef.IsTransparent() && nt != def.Type, nil
}

func (b *Builder) addFace(stream *Stream, x, y, z int, face block.Face, def block.Definition, subX, subY int) {
	atlasIndex := def.FaceAtlasIndices[face]
	var rect UVRect
	if def.CanSubdivide {
		rect = b.atlas.SubTileUV(atlasIndex, b.opts.SubtileDivisions, subX, subY)
	} else {
		rect = b.atlas.TileUV(atlasIndex)
	}

	size := b.opts.BlockSize
	bx, by, bz := float32(x)*size, float32(y)*size, float32(z)*size
	normal := faceNormals[face]

	var idx [4]uint32
	for i, p := range faceCorners[face] {
		lu, lv := LocalUV(face, p)
		u, v := rect.Lerp(lu, lv)
		idx[i] = stream.addVertex(bx+p[0]*size, by+p[1]*size, bz+p[2]*size, normal, u, v)
	}
	for _, corner := range TriangleOrder {
		stream.Indices = append(stream.Indices, idx[corner])
	}
}
