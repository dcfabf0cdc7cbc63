package vec

// Vec2 представляет координаты колонки мира по горизонтали (X и Z мира хранятся в X и Y)
type Vec2 struct {
	X, Y int
}

// SnapToGrid привязывает колонку к сетке с шагом gridSize
func (v Vec2) SnapToGrid(gridSize int) Vec2 {
	return Vec2{X: SnapToGrid(v.X, gridSize), Y: SnapToGrid(v.Y, gridSize)}
}

// OnGrid проверяет, лежит ли колонка на узле сетки с шагом gridSize
func (v Vec2) OnGrid(gridSize int) bool {
	return FloorMod(v.X, gridSize) == 0 && FloorMod(v.Y, gridSize) == 0
}
