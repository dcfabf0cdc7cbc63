package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/world"
)

// ErrInvalidConfig конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("invalid config")

// Config корневая структура конфигурации приложения.
type Config struct {
	Terrain   world.TerrainConfig `yaml:"terrain"`
	Streaming world.StreamConfig  `yaml:"streaming"`
	Mesh      MeshConfig          `yaml:"mesh"`
	Storage   StorageConfig       `yaml:"storage"`
	Server    ServerConfig        `yaml:"server"`
	Telemetry TelemetryConfig     `yaml:"telemetry"`
	Logging   LoggingConfig       `yaml:"logging"`
}

// MeshConfig параметры атласа и вариации текстур
type MeshConfig struct {
	AtlasColumns     int `yaml:"atlas_columns"`
	AtlasRows        int `yaml:"atlas_rows"`
	SubtileDivisions int `yaml:"subtile_divisions"`
}

type StorageConfig struct {
	CacheEnabled bool   `yaml:"cache_enabled"`
	Path         string `yaml:"path"` // пусто: кэш только в памяти
}

type ServerConfig struct {
	AdminPort      int  `yaml:"admin_port"`
	MetricsEnabled bool `yaml:"metrics_enabled"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	Directory string `yaml:"directory"`
}

// GetAdminPort возвращает порт admin-сервера с поддержкой fallback значений
func (s *ServerConfig) GetAdminPort() int {
	return getPortWithEnvFallback(s.AdminPort, "VOXEL_ADMIN_PORT", 8088)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Terrain:   world.DefaultTerrainConfig(),
		Streaming: world.DefaultStreamConfig(),
		Mesh: MeshConfig{
			AtlasColumns:     1,
			AtlasRows:        9,
			SubtileDivisions: 4,
		},
		Storage: StorageConfig{CacheEnabled: true},
		Server:  ServerConfig{MetricsEnabled: true},
		Telemetry: TelemetryConfig{
			ServiceName: "voxel-core",
		},
		Logging: LoggingConfig{Level: "INFO", Directory: "logs"},
	}
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", берётся ENV VOXEL_CONFIG; если и он пуст, возвращается Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse разбирает YAML и проверяет результат. Отсутствующие поля берутся из Default().
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	t, s := c.Terrain, c.Streaming
	if t.ClusterSize <= 0 {
		fail("terrain.cluster_size must be positive, got %d", t.ClusterSize)
	} else {
		if s.ChunkSize%t.ClusterSize != 0 {
			fail("streaming.chunk_size %d is not a multiple of terrain.cluster_size %d", s.ChunkSize, t.ClusterSize)
		}
		if t.TreeSpacing <= 0 || t.TreeSpacing%t.ClusterSize != 0 {
			fail("terrain.tree_spacing %d must be a positive multiple of cluster_size %d", t.TreeSpacing, t.ClusterSize)
		}
	}
	if t.TrunkMin > t.TrunkMax {
		fail("terrain.trunk_min %d exceeds trunk_max %d", t.TrunkMin, t.TrunkMax)
	}
	if s.ChunkSize <= 0 {
		fail("streaming.chunk_size must be positive, got %d", s.ChunkSize)
	}
	if s.BlockSize <= 0 {
		fail("streaming.block_size must be positive, got %g", s.BlockSize)
	}
	if s.ViewDistance < 0 {
		fail("streaming.view_distance must not be negative, got %d", s.ViewDistance)
	}
	if s.EvictionMargin < 0 {
		fail("streaming.eviction_margin must not be negative, got %d", s.EvictionMargin)
	}
	if s.MinRegionY > s.MaxRegionY {
		fail("streaming.min_region_y %d exceeds max_region_y %d", s.MinRegionY, s.MaxRegionY)
	}
	if s.MaxSurfacesPerTick < 0 {
		fail("streaming.max_surfaces_per_tick must not be negative, got %d", s.MaxSurfacesPerTick)
	}
	if c.Mesh.AtlasColumns <= 0 || c.Mesh.AtlasRows <= 0 {
		fail("mesh atlas grid must be positive, got %dx%d", c.Mesh.AtlasColumns, c.Mesh.AtlasRows)
	}
	if c.Mesh.SubtileDivisions <= 0 {
		fail("mesh.subtile_divisions must be positive, got %d", c.Mesh.SubtileDivisions)
	}
	if _, err := c.Logging.ParsedLevel(); err != nil {
		fail("logging.level: %v", err)
	}

	return errors.Join(errs...)
}

// ParsedLevel уровень логирования; пустое значение означает INFO
func (l LoggingConfig) ParsedLevel() (logging.LogLevel, error) {
	return logging.ParseLevel(l.Level)
}
