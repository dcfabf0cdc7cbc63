package vec

import "math"

// Vec3 представляет трехмерный вектор с целочисленными координатами
type Vec3 struct {
	X int
	Y int
	Z int
}

// Vec3Float представляет трехмерный вектор с плавающими координатами
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// Направления шести граней в каноническом порядке (+X, -X, +Y, -Y, +Z, -Z)
var FaceDirections = [6]Vec3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// DistanceTo возвращает квадрат расстояния до другого вектора
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return float64(dx*dx + dy*dy + dz*dz)
}

// ChebyshevXZ возвращает расстояние Чебышёва по горизонтали (X/Z)
func (v Vec3) ChebyshevXZ(other Vec3) int {
	dx := absInt(v.X - other.X)
	dz := absInt(v.Z - other.Z)
	if dx > dz {
		return dx
	}
	return dz
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Scale умножает вектор на целый коэффициент
func (v Vec3) Scale(k int) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Less задаёт детерминированный порядок (X, затем Y, затем Z)
func (v Vec3) Less(other Vec3) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.Z < other.Z
}

// FloorDiv делит каждую координату с округлением вниз
func (v Vec3) FloorDiv(d int) Vec3 {
	return Vec3{X: FloorDiv(v.X, d), Y: FloorDiv(v.Y, d), Z: FloorDiv(v.Z, d)}
}

// FloorMod возвращает неотрицательный остаток по каждой координате
func (v Vec3) FloorMod(d int) Vec3 {
	return Vec3{X: FloorMod(v.X, d), Y: FloorMod(v.Y, d), Z: FloorMod(v.Z, d)}
}

// SnapToGrid привязывает вектор к сетке с шагом gridSize, начиная от нуля мира
func (v Vec3) SnapToGrid(gridSize int) Vec3 {
	return Vec3{
		X: SnapToGrid(v.X, gridSize),
		Y: SnapToGrid(v.Y, gridSize),
		Z: SnapToGrid(v.Z, gridSize),
	}
}

// ToFloat преобразует в Vec3Float
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec3Float) Mul(k float64) Vec3Float {
	return Vec3Float{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// FloorDivScalar делит координаты на шаг и округляет вниз до целых
func (v Vec3Float) FloorDivScalar(step float64) Vec3 {
	return Vec3{
		X: int(math.Floor(v.X / step)),
		Y: int(math.Floor(v.Y / step)),
		Z: int(math.Floor(v.Z / step)),
	}
}

// FloorDiv целочисленное деление с округлением к минус бесконечности
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod остаток, всегда лежащий в диапазоне [0, b)
func FloorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// SnapToGrid возвращает ближайшее снизу кратное gridSize
func SnapToGrid(value, gridSize int) int {
	if gridSize <= 0 {
		return value
	}
	return value - FloorMod(value, gridSize)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
