package main

import (
	"sync"

	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/mesh"
)

// surfaceSummary то, что headless-потребитель помнит о регионе
type surfaceSummary struct {
	opaqueTriangles      int
	transparentTriangles int
	collisionVertices    int
}

// headlessConsumer заменяет движок: хранит сводку по каждой поверхности
// и строит треугольный список для коллизий, как это сделал бы движок.
type headlessConsumer struct {
	mu        sync.Mutex
	regions   map[vec.Vec3]surfaceSummary
	delivered int
	evicted   int
	logger    *logging.Logger
}

func newHeadlessConsumer(logger *logging.Logger) *headlessConsumer {
	return &headlessConsumer{
		regions: make(map[vec.Vec3]surfaceSummary),
		logger:  logger,
	}
}

// OnSurfaceReady заменяет прежний объект региона
func (hc *headlessConsumer) OnSurfaceReady(coord vec.Vec3, surface *mesh.Surface) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	hc.regions[coord] = surfaceSummary{
		opaqueTriangles:      surface.Opaque.TriangleCount(),
		transparentTriangles: surface.Transparent.TriangleCount(),
		collisionVertices:    len(surface.Opaque.Expand()) / 3,
	}
	hc.delivered++
	hc.logger.Trace("регион %v: %d непрозрачных и %d прозрачных треугольников",
		coord, surface.Opaque.TriangleCount(), surface.Transparent.TriangleCount())
}

// OnRegionEvicted убирает объект региона
func (hc *headlessConsumer) OnRegionEvicted(coord vec.Vec3) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	delete(hc.regions, coord)
	hc.evicted++
}

// totals количество регионов на экране и треугольников в них
func (hc *headlessConsumer) totals() (regions, triangles int) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	for _, s := range hc.regions {
		triangles += s.opaqueTriangles + s.transparentTriangles
	}
	return len(hc.regions), triangles
}
