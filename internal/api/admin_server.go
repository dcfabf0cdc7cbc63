package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/middleware"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world"
	"github.com/annel0/voxel-core/internal/world/block"
)

// WorldService часть менеджера регионов, доступная admin-серверу
type WorldService interface {
	Stats() world.StreamStats
	LoadedRegions() []vec.Vec3
	Region(coord vec.Vec3) (world.RegionInfo, bool)
	Catalog() *block.Catalog
	TryBreakCluster(pos vec.Vec3Float, size int) bool
	TryPlaceCluster(pos vec.Vec3Float, size int, t block.BlockType) bool
}

// Config содержит конфигурацию admin-сервера
type Config struct {
	Port     int                  // порт для запуска сервера
	World    WorldService         // менеджер регионов
	Registry *prometheus.Registry // nil: /metrics и HTTP-метрики отключены
	Logger   *logging.Logger
}

// AdminServer отладочный HTTP-сервер: здоровье, статистика, регионы, правки
type AdminServer struct {
	router  *gin.Engine
	world   WorldService
	port    int
	metrics *ProcessMetrics
	logger  *logging.Logger
	httpSrv *http.Server
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// EditRequest правка кластера в мировых координатах (метры)
type EditRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Size  int     `json:"size"`  // ребро кластера в блоках, по умолчанию 1
	Block string  `json:"block"` // имя типа, только для place
}

// NewAdminServer создает admin-сервер
func NewAdminServer(config Config) *AdminServer {
	if config.Port <= 0 {
		config.Port = 8088
	}
	if config.Logger == nil {
		config.Logger = logging.GetAPILogger()
	}

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	router.Use(otelgin.Middleware("voxel_admin"))
	router.Use(middleware.NewRequestLogger(config.Logger).Handler())

	if config.Registry != nil {
		promMw := middleware.NewPrometheusMiddleware("voxel_admin", config.Registry)
		router.Use(promMw.Handler())
		promMw.RegisterMetricsEndpoint(router, config.Registry)
	}

	server := &AdminServer{
		router:  router,
		world:   config.World,
		port:    config.Port,
		metrics: NewProcessMetrics(),
		logger:  config.Logger,
	}
	server.setupRoutes()
	server.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server
}

// Handler возвращает http.Handler сервера
func (s *AdminServer) Handler() http.Handler {
	return s.router
}

// setupRoutes настраивает маршруты
func (s *AdminServer) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/stats", s.handleStats)
		api.GET("/regions", s.handleRegions)
		api.GET("/regions/:x/:y/:z", s.handleRegion)

		edits := api.Group("/edits")
		edits.POST("/break", s.handleBreak)
		edits.POST("/place", s.handlePlace)
	}
}

func (s *AdminServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// handleStats возвращает статистику менеджера и процесса
func (s *AdminServer) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data: gin.H{
			"stream":  s.world.Stats(),
			"process": s.metrics.Snapshot(),
		},
	})
}

func (s *AdminServer) handleRegions(c *gin.Context) {
	regions := s.world.LoadedRegions()
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Загруженные регионы",
		Data: gin.H{
			"regions": regions,
			"total":   len(regions),
		},
	})
}

func (s *AdminServer) handleRegion(c *gin.Context) {
	coord, err := parseCoord(c.Param("x"), c.Param("y"), c.Param("z"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: err.Error()})
		return
	}

	info, ok := s.world.Region(coord)
	if !ok {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: fmt.Sprintf("Регион %d,%d,%d не загружен", coord.X, coord.Y, coord.Z),
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Регион", Data: info})
}

func (s *AdminServer) handleBreak(c *gin.Context) {
	req, ok := s.bindEdit(c)
	if !ok {
		return
	}
	applied := s.world.TryBreakCluster(vec.Vec3Float{X: req.X, Y: req.Y, Z: req.Z}, req.Size)
	s.respondEdit(c, "break", applied)
}

func (s *AdminServer) handlePlace(c *gin.Context) {
	req, ok := s.bindEdit(c)
	if !ok {
		return
	}

	t, known := block.ParseBlockType(req.Block)
	if !known || t == block.Air {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: fmt.Sprintf("Неизвестный тип блока %q", req.Block),
		})
		return
	}
	if _, defined := s.world.Catalog().Lookup(t); !defined {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: fmt.Sprintf("Тип блока %q не описан в каталоге", req.Block),
		})
		return
	}

	applied := s.world.TryPlaceCluster(vec.Vec3Float{X: req.X, Y: req.Y, Z: req.Z}, req.Size, t)
	s.respondEdit(c, "place", applied)
}

func (s *AdminServer) bindEdit(c *gin.Context) (EditRequest, bool) {
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса: " + err.Error(),
		})
		return req, false
	}
	if req.Size == 0 {
		req.Size = world.DefaultClusterSize
	}
	if req.Size < 0 {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "size должен быть положительным"})
		return req, false
	}
	return req, true
}

// respondEdit: отклонённая правка не ошибка клиента, но и не изменение мира
func (s *AdminServer) respondEdit(c *gin.Context, op string, applied bool) {
	if !applied {
		c.JSON(http.StatusConflict, GenericResponse{
			Success: false,
			Message: "Правка отклонена",
			Data:    gin.H{"op": op, "applied": false},
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Правка применена",
		Data:    gin.H{"op": op, "applied": true},
	})
}

func parseCoord(xs, ys, zs string) (vec.Vec3, error) {
	var v vec.Vec3
	var err error
	if v.X, err = strconv.Atoi(xs); err != nil {
		return v, fmt.Errorf("неверная координата x %q", xs)
	}
	if v.Y, err = strconv.Atoi(ys); err != nil {
		return v, fmt.Errorf("неверная координата y %q", ys)
	}
	if v.Z, err = strconv.Atoi(zs); err != nil {
		return v, fmt.Errorf("неверная координата z %q", zs)
	}
	return v, nil
}

// Start запускает сервер и блокируется до остановки через Shutdown
func (s *AdminServer) Start() error {
	s.logger.Info("🌐 Admin-сервер слушает :%d", s.port)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown плавно останавливает сервер
func (s *AdminServer) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
