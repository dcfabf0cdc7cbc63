package mesh

import "github.com/annel0/voxel-core/internal/vec"

// Stream индексированный поток вершин одного класса прозрачности.
// Positions и Normals по 3 float32 на вершину, UVs по 2.
type Stream struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

// VertexCount количество вершин в потоке
func (s *Stream) VertexCount() int {
	return len(s.Positions) / 3
}

// TriangleCount количество треугольников в потоке
func (s *Stream) TriangleCount() int {
	return len(s.Indices) / 3
}

// Empty сообщает, пуст ли поток
func (s *Stream) Empty() bool {
	return len(s.Indices) == 0
}

// Expand разворачивает индексы в плоский список позиций треугольников,
// который удобно отдавать построителю коллизий.
func (s *Stream) Expand() []float32 {
	out := make([]float32, 0, len(s.Indices)*3)
	for _, idx := range s.Indices {
		base := int(idx) * 3
		out = append(out, s.Positions[base], s.Positions[base+1], s.Positions[base+2])
	}
	return out
}

func (s *Stream) addVertex(px, py, pz float32, n [3]float32, u, v float32) uint32 {
	idx := uint32(len(s.Positions) / 3)
	s.Positions = append(s.Positions, px, py, pz)
	s.Normals = append(s.Normals, n[0], n[1], n[2])
	s.UVs = append(s.UVs, u, v)
	return idx
}

// Surface результат сборки меша региона. Новая поверхность полностью
// заменяет предыдущую для того же региона.
type Surface struct {
	Region      vec.Vec3
	Origin      vec.Vec3Float // мировая позиция угла региона в метрах
	Opaque      Stream
	Transparent Stream
}

// Empty сообщает, что в регионе нет ни одной видимой грани
func (s *Surface) Empty() bool {
	return s.Opaque.Empty() && s.Transparent.Empty()
}

// FaceCount количество граней в обоих потоках
func (s *Surface) FaceCount() int {
	return (s.Opaque.TriangleCount() + s.Transparent.TriangleCount()) / 2
}
