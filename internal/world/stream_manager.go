package world

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
	"github.com/annel0/voxel-core/internal/world/mesh"
)

// StreamConfig параметры менеджера загрузки регионов
type StreamConfig struct {
	ChunkSize          int           `yaml:"chunk_size"`
	BlockSize          float64       `yaml:"block_size"`
	ViewDistance       int           `yaml:"view_distance"`   // радиус загрузки в регионах по горизонтали
	EvictionMargin     int           `yaml:"eviction_margin"` // запас сверх ViewDistance до выгрузки
	MinRegionY         int           `yaml:"min_region_y"`
	MaxRegionY         int           `yaml:"max_region_y"`
	MaxSurfacesPerTick int           `yaml:"max_surfaces_per_tick"` // 0 без ограничения
	Workers            int           `yaml:"workers"`
	IdleBackoff        time.Duration `yaml:"idle_backoff"`
	RemeshNeighbors    bool          `yaml:"remesh_neighbors_on_load"`
}

// DefaultStreamConfig параметры по умолчанию
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		ChunkSize:          DefaultChunkSize,
		BlockSize:          DefaultBlockSize,
		ViewDistance:       8,
		EvictionMargin:     2,
		MinRegionY:         0,
		MaxRegionY:         1,
		MaxSurfacesPerTick: 4,
		Workers:            1,
		IdleBackoff:        5 * time.Millisecond,
		RemeshNeighbors:    true,
	}
}

// SurfaceConsumer принимает готовые поверхности на главном потоке.
// Потребитель сам заменяет предыдущие объекты региона.
type SurfaceConsumer interface {
	OnSurfaceReady(coord vec.Vec3, surface *mesh.Surface)
	OnRegionEvicted(coord vec.Vec3)
}

// RegionCache хранит сетки изменённых регионов, выгруженных из активного набора
type RegionCache interface {
	Put(coord vec.Vec3, data []byte) error
	Get(coord vec.Vec3) ([]byte, bool, error)
	Delete(coord vec.Vec3) error
}

// meshResult готовая поверхность, ожидающая потребителя
type meshResult struct {
	coord   vec.Vec3
	surface *mesh.Surface
}

// StreamStats снимок состояния менеджера
type StreamStats struct {
	InstanceID        string   `json:"instance_id"`
	LoadedRegions     int      `json:"loaded_regions"`
	PendingGeneration int      `json:"pending_generation"`
	PendingMesh       int      `json:"pending_mesh"`
	PendingSurfaces   int      `json:"pending_surfaces"`
	InFlight          int      `json:"in_flight"`
	ViewerRegion      vec.Vec3 `json:"viewer_region"`
	Generated         int64    `json:"generated"`
	Restored          int64    `json:"restored"`
	Meshed            int64    `json:"meshed"`
	MeshFailures      int64    `json:"mesh_failures"`
	Delivered         int64    `json:"delivered"`
	Evicted           int64    `json:"evicted"`
	EditsApplied      int64    `json:"edits_applied"`
	EditsRejected     int64    `json:"edits_rejected"`
}

// RegionInfo состояние одного загруженного региона
type RegionInfo struct {
	Coord    vec.Vec3 `json:"coord"`
	NonAir   int      `json:"non_air"`
	Dirty    bool     `json:"dirty"`
	Edited   bool     `json:"edited"`
	InFlight bool     `json:"in_flight"`
}

// streamCounters счётчики для StreamStats
type streamCounters struct {
	generated     atomic.Int64
	restored      atomic.Int64
	meshed        atomic.Int64
	meshFailures  atomic.Int64
	delivered     atomic.Int64
	evicted       atomic.Int64
	editsApplied  atomic.Int64
	editsRejected atomic.Int64
}

// StreamManager владеет активным набором регионов вокруг наблюдателя.
// Фоновые воркеры генерируют и собирают меши, главный поток раз в тик
// забирает готовые поверхности через ProcessCompleted.
type StreamManager struct {
	id        string
	cfg       StreamConfig
	units     BlockMetrics
	catalog   *block.Catalog
	generator *TerrainGenerator
	builder   *mesh.Builder
	cache     RegionCache
	metrics   *StreamMetrics
	logger    *logging.Logger
	tracer    trace.Tracer

	chunks   map[vec.Vec3]*Chunk // Карта загруженных регионов
	chunksMu sync.RWMutex        // Мьютекс для карты регионов

	toGenerate *workQueue[vec.Vec3]
	toMesh     *workQueue[vec.Vec3]
	completed  *workQueue[meshResult]
	evictions  *workQueue[vec.Vec3]

	// inFlight: координата поставлена в работу и ещё не потреблена
	inFlight   map[vec.Vec3]struct{}
	inFlightMu sync.Mutex

	viewerMu  sync.RWMutex
	viewer    vec.Vec3
	hasViewer bool

	shutdownChan chan struct{}
	stopOnce     sync.Once
	stopping     atomic.Bool
	started      atomic.Bool
	wg           sync.WaitGroup

	stats streamCounters
}

// StreamOption дополнительная настройка менеджера
type StreamOption func(*StreamManager)

// WithRegionCache подключает хранилище выгруженных изменённых регионов
func WithRegionCache(cache RegionCache) StreamOption {
	return func(m *StreamManager) { m.cache = cache }
}

// WithMetrics подключает Prometheus-метрики
func WithMetrics(metrics *StreamMetrics) StreamOption {
	return func(m *StreamManager) { m.metrics = metrics }
}

// WithLogger задаёт логгер компонента
func WithLogger(logger *logging.Logger) StreamOption {
	return func(m *StreamManager) { m.logger = logger }
}

// NewStreamManager создаёт менеджер. Каталог должен быть заполнен заранее.
func NewStreamManager(cfg StreamConfig, catalog *block.Catalog, generator *TerrainGenerator, builder *mesh.Builder, opts ...StreamOption) *StreamManager {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = DefaultBlockSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Workers > runtime.NumCPU() {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.IdleBackoff <= 0 {
		cfg.IdleBackoff = 5 * time.Millisecond
	}
	if cfg.MaxRegionY < cfg.MinRegionY {
		cfg.MaxRegionY = cfg.MinRegionY
	}

	m := &StreamManager{
		id:           uuid.NewString(),
		cfg:          cfg,
		units:        BlockMetrics{BlockSize: cfg.BlockSize, ChunkSize: cfg.ChunkSize},
		catalog:      catalog,
		generator:    generator,
		builder:      builder,
		logger:       logging.GetStreamLogger(),
		tracer:       otel.Tracer("github.com/annel0/voxel-core/internal/world"),
		chunks:       make(map[vec.Vec3]*Chunk),
		toGenerate:   newWorkQueue[vec.Vec3](),
		toMesh:       newWorkQueue[vec.Vec3](),
		completed:    newWorkQueue[meshResult](),
		evictions:    newWorkQueue[vec.Vec3](),
		inFlight:     make(map[vec.Vec3]struct{}),
		shutdownChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID идентификатор экземпляра для логов
func (m *StreamManager) ID() string {
	return m.id
}

// Config возвращает параметры менеджера
func (m *StreamManager) Config() StreamConfig {
	return m.cfg
}

// Units возвращает метрику перевода координат
func (m *StreamManager) Units() BlockMetrics {
	return m.units
}

// Catalog возвращает каталог блоков
func (m *StreamManager) Catalog() *block.Catalog {
	return m.catalog
}

// Start запускает фоновые воркеры. Контекст завершает их так же, как Stop.
func (m *StreamManager) Start(ctx context.Context) {
	if !m.started.CompareAndSwap(false, true) {
		return
	}

	for i := 0; i < m.cfg.Workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	go func() {
		select {
		case <-ctx.Done():
			m.Stop()
		case <-m.shutdownChan:
		}
	}()

	m.logger.Info("менеджер регионов %s запущен: воркеров %d, радиус %d", m.id, m.cfg.Workers, m.cfg.ViewDistance)
}

// Stop останавливает воркеры и дожидается их завершения.
// После вызова ни одна поверхность не передаётся потребителю.
func (m *StreamManager) Stop() {
	m.stopOnce.Do(func() {
		m.stopping.Store(true)
		close(m.shutdownChan)
		m.wg.Wait()
		m.completed.Clear()
		m.logger.Info("менеджер регионов %s остановлен", m.id)
	})
}

// worker обрабатывает очереди генерации и мешинга
func (m *StreamManager) worker(id int) {
	defer m.wg.Done()

	idle := time.NewTimer(m.cfg.IdleBackoff)
	defer idle.Stop()

	for {
		select {
		case <-m.shutdownChan:
			return
		default:
		}

		if m.step() {
			continue
		}

		// Очереди пусты: короткая пауза
		idle.Reset(m.cfg.IdleBackoff)
		select {
		case <-m.shutdownChan:
			return
		case <-idle.C:
		}
	}
}

// step выполняет одну задачу. Генерация приоритетнее мешинга.
func (m *StreamManager) step() bool {
	if m.stopping.Load() {
		return false
	}
	if coord, ok := m.toGenerate.Pop(); ok {
		m.generateJob(coord)
		m.updateQueueMetrics()
		return true
	}
	if coord, ok := m.toMesh.Pop(); ok {
		m.meshJob(coord)
		m.updateQueueMetrics()
		return true
	}
	return false
}

// UpdateViewerPosition ставит в очередь регионы в радиусе видимости
// (ближайшие первыми) и выгружает слишком далёкие. Вызывается с главного потока.
func (m *StreamManager) UpdateViewerPosition(pos vec.Vec3Float) {
	center := m.units.WorldToChunk(pos)

	m.viewerMu.Lock()
	m.viewer = center
	m.hasViewer = true
	m.viewerMu.Unlock()

	r := m.cfg.ViewDistance
	wanted := make([]vec.Vec3, 0, (2*r+1)*(2*r+1)*(m.cfg.MaxRegionY-m.cfg.MinRegionY+1))
	for x := center.X - r; x <= center.X+r; x++ {
		for z := center.Z - r; z <= center.Z+r; z++ {
			for y := m.cfg.MinRegionY; y <= m.cfg.MaxRegionY; y++ {
				wanted = append(wanted, vec.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	sort.Slice(wanted, func(i, j int) bool {
		di, dj := wanted[i].DistanceTo(center), wanted[j].DistanceTo(center)
		if di != dj {
			return di < dj
		}
		return wanted[i].Less(wanted[j])
	})

	admitted := wanted[:0]
	for _, coord := range wanted {
		if m.admit(coord) {
			admitted = append(admitted, coord)
		}
	}
	if len(admitted) > 0 {
		m.toGenerate.PushAll(admitted)
		m.logger.Debug("наблюдатель в регионе %v: в очередь поставлено %d регионов", center, len(admitted))
	}

	m.evictFar(center)
	m.updateQueueMetrics()
}

// RequestRegion ставит регион в очередь генерации, если он не загружен и не в работе
func (m *StreamManager) RequestRegion(coord vec.Vec3) bool {
	if !m.admit(coord) {
		return false
	}
	m.toGenerate.Push(coord)
	return true
}

// admit проверяет границы и загрузку региона и помечает его как находящийся в работе
func (m *StreamManager) admit(coord vec.Vec3) bool {
	if coord.Y < m.cfg.MinRegionY || coord.Y > m.cfg.MaxRegionY {
		return false
	}
	if m.chunk(coord) != nil {
		return false
	}
	return m.claim(coord)
}

// claim помечает координату как находящуюся в работе
func (m *StreamManager) claim(coord vec.Vec3) bool {
	m.inFlightMu.Lock()
	defer m.inFlightMu.Unlock()
	if _, busy := m.inFlight[coord]; busy {
		return false
	}
	m.inFlight[coord] = struct{}{}
	return true
}

func (m *StreamManager) release(coord vec.Vec3) {
	m.inFlightMu.Lock()
	delete(m.inFlight, coord)
	m.inFlightMu.Unlock()
}

func (m *StreamManager) isInFlight(coord vec.Vec3) bool {
	m.inFlightMu.Lock()
	defer m.inFlightMu.Unlock()
	_, busy := m.inFlight[coord]
	return busy
}

// wanted сообщает, нужен ли ещё регион при текущем положении наблюдателя
func (m *StreamManager) wanted(coord vec.Vec3) bool {
	if coord.Y < m.cfg.MinRegionY || coord.Y > m.cfg.MaxRegionY {
		return false
	}
	m.viewerMu.RLock()
	defer m.viewerMu.RUnlock()
	if !m.hasViewer {
		return true
	}
	return coord.ChebyshevXZ(m.viewer) <= m.cfg.ViewDistance+m.cfg.EvictionMargin
}

// chunk возвращает загруженный регион или nil
func (m *StreamManager) chunk(coord vec.Vec3) *Chunk {
	m.chunksMu.RLock()
	defer m.chunksMu.RUnlock()
	return m.chunks[coord]
}

// generateJob синтезирует регион (или восстанавливает его из кэша)
// и ставит его на первую сборку меша.
func (m *StreamManager) generateJob(coord vec.Vec3) {
	_, span := m.tracer.Start(context.Background(), "stream.generate",
		trace.WithAttributes(regionAttrs(coord)...))
	defer span.End()

	if !m.wanted(coord) {
		span.SetAttributes(attribute.Bool("skipped", true))
		m.release(coord)
		return
	}

	chunk, restored := m.restore(coord)
	if chunk == nil {
		chunk = NewChunk(coord, m.cfg.ChunkSize)
		m.generator.Generate(chunk)
	}
	span.SetAttributes(attribute.Bool("restored", restored))

	m.chunksMu.Lock()
	m.chunks[coord] = chunk
	loaded := len(m.chunks)
	m.chunksMu.Unlock()

	if restored {
		m.stats.restored.Add(1)
		m.metrics.regionLoaded("restored")
	} else {
		m.stats.generated.Add(1)
		m.metrics.regionLoaded("generated")
	}
	m.metrics.setLoaded(loaded)

	// Координата остаётся в работе до потребления поверхности
	m.toMesh.Push(coord)

	if m.cfg.RemeshNeighbors {
		for _, dir := range vec.FaceDirections {
			nb := coord.Add(dir)
			if c := m.chunk(nb); c != nil {
				c.MarkDirty()
				m.scheduleMesh(nb)
			}
		}
	}
}

// restore достаёт регион из кэша выгруженных правок
func (m *StreamManager) restore(coord vec.Vec3) (*Chunk, bool) {
	if m.cache == nil {
		return nil, false
	}

	data, ok, err := m.cache.Get(coord)
	if err != nil {
		m.logger.Error("чтение региона %v из кэша: %v", coord, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	chunk, err := DecodeChunk(data)
	if err == nil && (chunk.Coord() != coord || chunk.Size() != m.cfg.ChunkSize) {
		err = fmt.Errorf("%w: cached region %v size %d does not match %v size %d",
			ErrDecode, chunk.Coord(), chunk.Size(), coord, m.cfg.ChunkSize)
	}
	if err == nil {
		err = chunk.validateTypes(m.catalog)
	}
	if err != nil {
		m.logger.Error("регион %v в кэше повреждён, генерируем заново: %v", coord, err)
		return nil, false
	}

	if err := m.cache.Delete(coord); err != nil {
		m.logger.Warn("удаление региона %v из кэша: %v", coord, err)
	}
	m.logger.Debug("регион %v восстановлен из кэша", coord)
	return chunk, true
}

// meshJob собирает поверхность по снимку сетки региона
func (m *StreamManager) meshJob(coord vec.Vec3) {
	_, span := m.tracer.Start(context.Background(), "stream.mesh",
		trace.WithAttributes(regionAttrs(coord)...))
	defer span.End()

	chunk := m.chunk(coord)
	if chunk == nil {
		// Регион выгружен, пока задача стояла в очереди
		m.release(coord)
		return
	}

	neighbors := m.neighborhood(coord)
	snapshot := chunk.Snapshot()

	start := time.Now()
	surface, err := m.builder.Build(snapshot, neighbors)
	elapsed := time.Since(start)
	m.metrics.meshBuilt(elapsed.Seconds(), err)

	if err != nil {
		m.stats.meshFailures.Add(1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "mesh build failed")
		m.logger.Error("сборка меша региона %v прервана: %v", coord, err)
		m.release(coord)
		return
	}

	m.stats.meshed.Add(1)
	span.SetAttributes(attribute.Int("faces", surface.FaceCount()))

	if m.stopping.Load() {
		return
	}
	m.completed.Push(meshResult{coord: coord, surface: surface})
}

// ProcessCompleted передаёт потребителю готовые поверхности и уведомления
// о выгрузке. Не больше MaxSurfacesPerTick поверхностей за вызов.
// Вызывается с главного потока, никогда не блокируется на воркерах.
func (m *StreamManager) ProcessCompleted(consumer SurfaceConsumer) int {
	if m.stopping.Load() {
		return 0
	}

	for {
		coord, ok := m.evictions.Pop()
		if !ok {
			break
		}
		consumer.OnRegionEvicted(coord)
	}

	delivered := 0
	limit := m.cfg.MaxSurfacesPerTick
	for limit <= 0 || delivered < limit {
		res, ok := m.completed.Pop()
		if !ok {
			break
		}

		chunk := m.chunk(res.coord)
		m.release(res.coord)
		if chunk == nil {
			continue
		}

		consumer.OnSurfaceReady(res.coord, res.surface)
		delivered++

		// Правка пришла после снимка: нужна свежая сборка
		if chunk.Dirty() {
			m.scheduleMesh(res.coord)
		}
	}

	if delivered > 0 {
		m.stats.delivered.Add(int64(delivered))
		m.updateQueueMetrics()
	}
	return delivered
}

// scheduleMesh ставит загруженный регион на пересборку, если он ещё не в работе.
// Регион в работе пересоберётся после потребления благодаря флагу dirty.
func (m *StreamManager) scheduleMesh(coord vec.Vec3) bool {
	if m.chunk(coord) == nil {
		return false
	}
	if !m.claim(coord) {
		return false
	}
	m.toMesh.Push(coord)
	return true
}

// evictFar выгружает регионы дальше ViewDistance+EvictionMargin
func (m *StreamManager) evictFar(center vec.Vec3) {
	limit := m.cfg.ViewDistance + m.cfg.EvictionMargin

	var removed []*Chunk
	m.chunksMu.Lock()
	for coord, c := range m.chunks {
		if coord.ChebyshevXZ(center) > limit || coord.Y < m.cfg.MinRegionY || coord.Y > m.cfg.MaxRegionY {
			delete(m.chunks, coord)
			removed = append(removed, c)
		}
	}
	loaded := len(m.chunks)
	m.chunksMu.Unlock()

	if len(removed) == 0 {
		return
	}

	sort.Slice(removed, func(i, j int) bool { return removed[i].Coord().Less(removed[j].Coord()) })
	for _, c := range removed {
		if c.Edited() && m.cache != nil {
			m.persist(c)
		}
		m.evictions.Push(c.Coord())
	}

	m.stats.evicted.Add(int64(len(removed)))
	m.metrics.evicted(len(removed))
	m.metrics.setLoaded(loaded)
	m.logger.Debug("выгружено регионов: %d", len(removed))
}

// persist сохраняет изменённый регион в кэш
func (m *StreamManager) persist(c *Chunk) {
	data, err := c.MarshalBinary()
	if err == nil {
		err = m.cache.Put(c.Coord(), data)
	}
	if err != nil {
		m.logger.Error("сохранение региона %v в кэш: %v", c.Coord(), err)
	}
}

// Flush сохраняет в кэш все изменённые загруженные регионы
func (m *StreamManager) Flush() error {
	if m.cache == nil {
		return nil
	}

	m.chunksMu.RLock()
	edited := make([]*Chunk, 0)
	for _, c := range m.chunks {
		if c.Edited() {
			edited = append(edited, c)
		}
	}
	m.chunksMu.RUnlock()

	var errs []error
	for _, c := range edited {
		data, err := c.MarshalBinary()
		if err == nil {
			err = m.cache.Put(c.Coord(), data)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("region %v: %w", c.Coord(), err))
		}
	}
	return errors.Join(errs...)
}

// chunkNeighborhood разрешает ячейки за гранями региона по соседним регионам
type chunkNeighborhood struct {
	size  int
	faces [block.FaceCount]*Chunk
}

// Neighbor реализует mesh.NeighborLookup
func (n *chunkNeighborhood) Neighbor(x, y, z int) (block.BlockType, bool) {
	var face block.Face
	switch {
	case x >= n.size:
		face, x = block.FacePosX, x-n.size
	case x < 0:
		face, x = block.FaceNegX, x+n.size
	case y >= n.size:
		face, y = block.FacePosY, y-n.size
	case y < 0:
		face, y = block.FaceNegY, y+n.size
	case z >= n.size:
		face, z = block.FacePosZ, z-n.size
	case z < 0:
		face, z = block.FaceNegZ, z+n.size
	default:
		return block.Air, false
	}

	c := n.faces[face]
	if c == nil {
		return block.Air, false
	}
	return c.Get(x, y, z), true
}

func (m *StreamManager) neighborhood(coord vec.Vec3) *chunkNeighborhood {
	n := &chunkNeighborhood{size: m.cfg.ChunkSize}
	m.chunksMu.RLock()
	defer m.chunksMu.RUnlock()
	for face, dir := range vec.FaceDirections {
		n.faces[face] = m.chunks[coord.Add(dir)]
	}
	return n
}

// Stats возвращает снимок состояния менеджера
func (m *StreamManager) Stats() StreamStats {
	m.chunksMu.RLock()
	loaded := len(m.chunks)
	m.chunksMu.RUnlock()

	m.inFlightMu.Lock()
	inFlight := len(m.inFlight)
	m.inFlightMu.Unlock()

	m.viewerMu.RLock()
	viewer := m.viewer
	m.viewerMu.RUnlock()

	return StreamStats{
		InstanceID:        m.id,
		LoadedRegions:     loaded,
		PendingGeneration: m.toGenerate.Len(),
		PendingMesh:       m.toMesh.Len(),
		PendingSurfaces:   m.completed.Len(),
		InFlight:          inFlight,
		ViewerRegion:      viewer,
		Generated:         m.stats.generated.Load(),
		Restored:          m.stats.restored.Load(),
		Meshed:            m.stats.meshed.Load(),
		MeshFailures:      m.stats.meshFailures.Load(),
		Delivered:         m.stats.delivered.Load(),
		Evicted:           m.stats.evicted.Load(),
		EditsApplied:      m.stats.editsApplied.Load(),
		EditsRejected:     m.stats.editsRejected.Load(),
	}
}

// LoadedRegions возвращает координаты загруженных регионов в детерминированном порядке
func (m *StreamManager) LoadedRegions() []vec.Vec3 {
	m.chunksMu.RLock()
	coords := make([]vec.Vec3, 0, len(m.chunks))
	for coord := range m.chunks {
		coords = append(coords, coord)
	}
	m.chunksMu.RUnlock()

	sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })
	return coords
}

// Region возвращает состояние загруженного региона
func (m *StreamManager) Region(coord vec.Vec3) (RegionInfo, bool) {
	c := m.chunk(coord)
	if c == nil {
		return RegionInfo{}, false
	}
	return RegionInfo{
		Coord:    coord,
		NonAir:   c.NonAirCount(),
		Dirty:    c.Dirty(),
		Edited:   c.Edited(),
		InFlight: m.isInFlight(coord),
	}, true
}

// BlockAt возвращает тип блока по мировым координатам блока.
// ok=false, если регион не загружен.
func (m *StreamManager) BlockAt(b vec.Vec3) (block.BlockType, bool) {
	coord, local := m.units.BlockToChunk(b)
	c := m.chunk(coord)
	if c == nil {
		return block.Air, false
	}
	return c.Get(local.X, local.Y, local.Z), true
}

func (m *StreamManager) updateQueueMetrics() {
	m.metrics.setQueues(m.toGenerate.Len(), m.toMesh.Len(), m.completed.Len())
}

func regionAttrs(coord vec.Vec3) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("region.x", coord.X),
		attribute.Int("region.y", coord.Y),
		attribute.Int("region.z", coord.Z),
	}
}
