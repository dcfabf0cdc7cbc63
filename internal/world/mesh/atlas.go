package mesh

import "fmt"

// UVRect прямоугольник в нормализованных координатах атласа
type UVRect struct {
	MinU, MinV float32
	MaxU, MaxV float32
}

// Lerp возвращает точку внутри прямоугольника по локальным u/v в [0,1]
func (r UVRect) Lerp(u, v float32) (float32, float32) {
	return r.MinU + (r.MaxU-r.MinU)*u, r.MinV + (r.MaxV-r.MinV)*v
}

// Atlas адресует тайлы общей текстуры по индексу.
// Тайлы уложены построчно: индекс i лежит в колонке i%Columns и строке i/Columns.
type Atlas struct {
	Columns int
	Rows    int
}

// NewAtlas создаёт атлас с указанной сеткой тайлов
func NewAtlas(columns, rows int) (Atlas, error) {
	if columns <= 0 || rows <= 0 {
		return Atlas{}, fmt.Errorf("atlas grid must be positive, got %dx%d", columns, rows)
	}
	return Atlas{Columns: columns, Rows: rows}, nil
}

// TileCount количество тайлов в атласе
func (a Atlas) TileCount() int {
	return a.Columns * a.Rows
}

// TileUV возвращает UV-прямоугольник тайла
func (a Atlas) TileUV(index int) UVRect {
	x := index % a.Columns
	y := index / a.Columns
	return UVRect{
		MinU: float32(x) / float32(a.Columns),
		MinV: float32(y) / float32(a.Rows),
		MaxU: float32(x+1) / float32(a.Columns),
		MaxV: float32(y+1) / float32(a.Rows),
	}
}

// SubTileUV делит тайл на divisions×divisions частей и возвращает часть (subX, subY).
// Индексы частей приводятся в допустимый диапазон.
func (a Atlas) SubTileUV(index, divisions, subX, subY int) UVRect {
	tile := a.TileUV(index)
	if divisions < 1 {
		divisions = 1
	}
	stepU := (tile.MaxU - tile.MinU) / float32(divisions)
	stepV := (tile.MaxV - tile.MinV) / float32(divisions)
	subX = clampInt(subX, 0, divisions-1)
	subY = clampInt(subY, 0, divisions-1)

	minU := tile.MinU + float32(subX)*stepU
	minV := tile.MinV + float32(subY)*stepV
	return UVRect{MinU: minU, MinV: minV, MaxU: minU + stepU, MaxV: minV + stepV}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
