package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StreamMetrics Prometheus-метрики конвейера загрузки регионов.
// Метрики:
// * voxel_stream_queue_length{queue} — gauge (generate, mesh, completed)
// * voxel_stream_loaded_regions — gauge
// * voxel_stream_regions_loaded_total{source} — counter (generated, restored)
// * voxel_stream_mesh_builds_total{result} — counter (ok, error)
// * voxel_stream_mesh_build_duration_seconds — histogram
// * voxel_stream_evictions_total — counter
// * voxel_stream_edits_total{op,result} — counter
//
// Нулевой *StreamMetrics допустим: все методы становятся пустыми.
type StreamMetrics struct {
	queueLength   *prometheus.GaugeVec
	loadedRegions prometheus.Gauge
	regionsLoaded *prometheus.CounterVec
	meshBuilds    *prometheus.CounterVec
	meshDuration  prometheus.Histogram
	evictions     prometheus.Counter
	edits         *prometheus.CounterVec
}

// NewStreamMetrics создаёт метрики и регистрирует их в указанном регистре
func NewStreamMetrics(reg prometheus.Registerer) *StreamMetrics {
	sm := &StreamMetrics{
		queueLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "voxel",
			Subsystem: "stream",
			Name:      "queue_length",
			Help:      "Длина очередей конвейера.",
		}, []string{"queue"}),
		loadedRegions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Subsystem: "stream",
			Name:      "loaded_regions",
			Help:      "Количество загруженных регионов.",
		}),
		regionsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "stream",
			Name:      "regions_loaded_total",
			Help:      "Регионы, добавленные в активный набор, по источнику.",
		}, []string{"source"}),
		meshBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "stream",
			Name:      "mesh_builds_total",
			Help:      "Сборки поверхностей по результату.",
		}, []string{"result"}),
		meshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxel",
			Subsystem: "stream",
			Name:      "mesh_build_duration_seconds",
			Help:      "Длительность сборки поверхности региона.",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "stream",
			Name:      "evictions_total",
			Help:      "Регионы, выгруженные из активного набора.",
		}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "stream",
			Name:      "edits_total",
			Help:      "Правки кластеров по операции и результату.",
		}, []string{"op", "result"}),
	}

	if reg != nil {
		reg.MustRegister(sm.queueLength, sm.loadedRegions, sm.regionsLoaded,
			sm.meshBuilds, sm.meshDuration, sm.evictions, sm.edits)
	}
	return sm
}

func (sm *StreamMetrics) setQueues(generate, mesh, completed int) {
	if sm == nil {
		return
	}
	sm.queueLength.WithLabelValues("generate").Set(float64(generate))
	sm.queueLength.WithLabelValues("mesh").Set(float64(mesh))
	sm.queueLength.WithLabelValues("completed").Set(float64(completed))
}

func (sm *StreamMetrics) setLoaded(n int) {
	if sm == nil {
		return
	}
	sm.loadedRegions.Set(float64(n))
}

func (sm *StreamMetrics) regionLoaded(source string) {
	if sm == nil {
		return
	}
	sm.regionsLoaded.WithLabelValues(source).Inc()
}

func (sm *StreamMetrics) meshBuilt(seconds float64, err error) {
	if sm == nil {
		return
	}
	if err != nil {
		sm.meshBuilds.WithLabelValues("error").Inc()
		return
	}
	sm.meshBuilds.WithLabelValues("ok").Inc()
	sm.meshDuration.Observe(seconds)
}

func (sm *StreamMetrics) evicted(n int) {
	if sm == nil || n == 0 {
		return
	}
	sm.evictions.Add(float64(n))
}

func (sm *StreamMetrics) edit(op string, ok bool) {
	if sm == nil {
		return
	}
	result := "rejected"
	if ok {
		result = "applied"
	}
	sm.edits.WithLabelValues(op, result).Inc()
}
