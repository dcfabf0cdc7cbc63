package mesh

import "github.com/annel0/voxel-core/internal/vec"

const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619
	goldenRatio uint32 = 0x9e3779b9
)

// SubTile выбирает под-тайл для блока по его позиции.
// Чистая функция координат без сида: повторная сборка меша после
// несвязанной правки не перемешивает текстуры соседних блоков.
func SubTile(region vec.Vec3, x, y, z, divisions int) (int, int) {
	if divisions <= 1 {
		return 0, 0
	}

	h := fnvOffset32
	for _, v := range [6]int{region.X, region.Y, region.Z, x, y, z} {
		h = (h ^ uint32(int32(v))) * fnvPrime32
	}

	n := uint32(divisions)
	subX := int(h % n)
	h = (h ^ goldenRatio) * fnvPrime32
	subY := int(h % n)
	return subX, subY
}
