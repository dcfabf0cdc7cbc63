package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/annel0/voxel-core/internal/api"
	"github.com/annel0/voxel-core/internal/config"
	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/observability"
	"github.com/annel0/voxel-core/internal/storage"
	"github.com/annel0/voxel-core/internal/world"
	"github.com/annel0/voxel-core/internal/world/block"
	"github.com/annel0/voxel-core/internal/world/mesh"
)

func main() {
	var (
		configPath = flag.String("config", "", "Путь к YAML конфигурации (по умолчанию $VOXEL_CONFIG)")
		tickRate   = flag.Duration("tick", 50*time.Millisecond, "Длительность тика главного потока")
		orbit      = flag.Float64("orbit", 48, "Радиус облёта наблюдателя, м")
		speed      = flag.Float64("speed", 6, "Скорость наблюдателя, м/с")
		duration   = flag.Duration("duration", 0, "Время работы, 0 до сигнала")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	logging.SetLogDirectory(cfg.Logging.Directory)
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	level, err := cfg.Logging.ParsedLevel()
	if err != nil {
		log.Fatalf("❌ Неверный уровень логирования: %v", err)
	}
	logging.SetDefaultLevel(level)
	logging.GetLoggerManager().SetAllLevels(level, logging.TRACE)

	logging.Info("🧱 Запуск voxel-core: регион %d блоков по %.2f м, радиус %d",
		cfg.Streaming.ChunkSize, cfg.Streaming.BlockSize, cfg.Streaming.ViewDistance)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled)
	if err != nil {
		logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===
	catalog := block.NewDefaultCatalog()
	generator := world.NewTerrainGenerator(cfg.Terrain, world.NewPerlinChannels(cfg.Terrain))

	atlas, err := mesh.NewAtlas(cfg.Mesh.AtlasColumns, cfg.Mesh.AtlasRows)
	if err != nil {
		log.Fatalf("❌ Ошибка атласа: %v", err)
	}
	builder := mesh.NewBuilder(catalog, atlas, mesh.Options{
		BlockSize:        float32(cfg.Streaming.BlockSize),
		SubtileDivisions: cfg.Mesh.SubtileDivisions,
	})

	var registry *prometheus.Registry
	opts := []world.StreamOption{world.WithLogger(logging.GetStreamLogger())}
	if cfg.Server.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, world.WithMetrics(world.NewStreamMetrics(registry)))
	}

	var cache *storage.RegionCache
	if cfg.Storage.CacheEnabled {
		cache, err = storage.NewRegionCache(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("❌ Ошибка открытия кэша регионов: %v", err)
		}
		opts = append(opts, world.WithRegionCache(cache))
		logging.GetStorageLogger().Info("💾 Кэш регионов открыт (path=%q)", cfg.Storage.Path)
	}

	manager := world.NewStreamManager(cfg.Streaming, catalog, generator, builder, opts...)
	manager.Start(ctx)

	admin := api.NewAdminServer(api.Config{
		Port:     cfg.Server.GetAdminPort(),
		World:    manager,
		Registry: registry,
		Logger:   logging.GetAPILogger(),
	})
	go func() {
		if err := admin.Start(); err != nil {
			logging.Error("❌ Ошибка admin-сервера: %v", err)
		}
	}()

	consumer := newHeadlessConsumer(logging.GetServerLogger())
	viewer := newSimulatedViewer(generator, manager.Units(), *orbit, *speed)
	manager.UpdateViewerPosition(viewer.Position())

	// === ГЛАВНЫЙ ЦИКЛ ===
	ticker := time.NewTicker(*tickRate)
	defer ticker.Stop()
	report := time.NewTicker(5 * time.Second)
	defer report.Stop()

	last := time.Now()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case now := <-ticker.C:
			manager.UpdateViewerPosition(viewer.Advance(now.Sub(last)))
			last = now
			manager.ProcessCompleted(consumer)
		case <-report.C:
			stats := manager.Stats()
			regions, triangles := consumer.totals()
			logging.Info("📊 регионов %d (на экране %d, треугольников %d), очереди gen=%d mesh=%d, в работе %d",
				stats.LoadedRegions, regions, triangles, stats.PendingGeneration, stats.PendingMesh, stats.InFlight)
		}
	}

	// === GRACEFUL SHUTDOWN ===
	logging.Info("📡 Завершение работы...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := admin.Shutdown(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки admin-сервера: %v", err)
	}
	manager.Stop()
	if err := manager.Flush(); err != nil {
		logging.Error("❌ Ошибка сохранения регионов: %v", err)
	}
	if cache != nil {
		if err := cache.Close(); err != nil {
			logging.Error("❌ Ошибка закрытия кэша: %v", err)
		}
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки OpenTelemetry: %v", err)
	}

	logging.Info("👋 Сервер остановлен: доставлено поверхностей %d, выгружено регионов %d",
		consumer.delivered, consumer.evicted)
}
