package world

import (
	"math"
	"math/rand"

	"github.com/annel0/voxel-core/internal/util"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
)

// TerrainConfig параметры синтеза ландшафта. Высоты и расстояния в блоках.
type TerrainConfig struct {
	Seed            int64   `yaml:"seed"`
	ClusterSize     int     `yaml:"cluster_size"`
	BaseHeight      int     `yaml:"base_height"`
	HeightAmplitude float64 `yaml:"height_amplitude"`
	DetailAmplitude float64 `yaml:"detail_amplitude"`
	SubsoilDepth    int     `yaml:"subsoil_depth"`

	// Пороги канала материала поверхности
	StoneThreshold float64 `yaml:"stone_threshold"`
	RockThreshold  float64 `yaml:"rock_threshold"`
	// Порог канала скальных пород для глубинных слоёв
	DeepRockThreshold float64 `yaml:"deep_rock_threshold"`

	TreeThreshold float64 `yaml:"tree_threshold"`
	TreeSpacing   int     `yaml:"tree_spacing"`
	TrunkMin      int     `yaml:"trunk_min"`
	TrunkMax      int     `yaml:"trunk_max"`
	CanopyRadius  int     `yaml:"canopy_radius"`

	// Частоты каналов шума
	HeightFrequency   float64 `yaml:"height_frequency"`
	DetailFrequency   float64 `yaml:"detail_frequency"`
	MaterialFrequency float64 `yaml:"material_frequency"`
	RockFrequency     float64 `yaml:"rock_frequency"`
	TreeFrequency     float64 `yaml:"tree_frequency"`
	Octaves           int     `yaml:"octaves"`
}

// DefaultTerrainConfig параметры ландшафта по умолчанию
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Seed:              12345,
		ClusterSize:       LargeClusterSize,
		BaseHeight:        20,
		HeightAmplitude:   12,
		DetailAmplitude:   4,
		SubsoilDepth:      3,
		StoneThreshold:    0.45,
		RockThreshold:     -0.55,
		DeepRockThreshold: 0.3,
		TreeThreshold:     0.35,
		TreeSpacing:       16,
		TrunkMin:          12,
		TrunkMax:          20,
		CanopyRadius:      8,
		HeightFrequency:   0.004,
		DetailFrequency:   0.03,
		MaterialFrequency: 0.01,
		RockFrequency:     0.02,
		TreeFrequency:     0.05,
		Octaves:           3,
	}
}

// TerrainChannels внешние каналы шума, из которых собирается ландшафт
type TerrainChannels struct {
	Height      util.NoiseSource
	Detail      util.NoiseSource
	Material    util.NoiseSource
	Rock        util.NoiseSource
	TreeDensity util.NoiseSource
}

// NewPerlinChannels создаёт каналы Перлина с разными сидами от общего сида мира
func NewPerlinChannels(cfg TerrainConfig) TerrainChannels {
	return TerrainChannels{
		Height:      util.NewPerlinChannel(cfg.Seed, cfg.HeightFrequency, cfg.Octaves),
		Detail:      util.NewPerlinChannel(cfg.Seed+1, cfg.DetailFrequency, cfg.Octaves),
		Material:    util.NewPerlinChannel(cfg.Seed+42, cfg.MaterialFrequency, cfg.Octaves),
		Rock:        util.NewPerlinChannel(cfg.Seed+77, cfg.RockFrequency, cfg.Octaves),
		TreeDensity: util.NewPerlinChannel(cfg.Seed+101, cfg.TreeFrequency, 1),
	}
}

// FlatChannels каналы, возвращающие ноль везде: ровная поверхность на BaseHeight без деревьев
func FlatChannels() TerrainChannels {
	zero := util.Constant(0)
	return TerrainChannels{Height: zero, Detail: zero, Material: zero, Rock: zero, TreeDensity: zero}
}

// TerrainGenerator заполняет сетки регионов по шуму в мировых координатах,
// поэтому соседние регионы стыкуются без швов.
type TerrainGenerator struct {
	cfg      TerrainConfig
	channels TerrainChannels
}

// column описание столбца в точке выборки кластера
type column struct {
	height  int // мировая Y верхнего занятого блока
	surface block.BlockType
	deep    block.BlockType
}

// tree дерево, привязанное к узлу сетки деревьев
type tree struct {
	anchor vec.Vec2 // мировые X/Z ствола
	base   int      // первый блок ствола
	height int
}

// NewTerrainGenerator создаёт генератор ландшафта
func NewTerrainGenerator(cfg TerrainConfig, channels TerrainChannels) *TerrainGenerator {
	if cfg.ClusterSize <= 0 {
		cfg.ClusterSize = 1
	}
	if cfg.TreeSpacing <= 0 {
		cfg.TreeSpacing = cfg.ClusterSize
	}
	if cfg.TrunkMax < cfg.TrunkMin {
		cfg.TrunkMax = cfg.TrunkMin
	}
	return &TerrainGenerator{cfg: cfg, channels: channels}
}

// Config возвращает параметры генератора
func (g *TerrainGenerator) Config() TerrainConfig {
	return g.cfg
}

// Generate заполняет сетку региона. Вызывается один раз для нового региона,
// до того как регион станет виден другим потокам.
func (g *TerrainGenerator) Generate(c *Chunk) {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := c.size
	origin := c.coord.Scale(size)
	cs := g.cfg.ClusterSize

	// Выборка шума шагом кластера: все столбцы кластера получают одно значение
	for ax := vec.SnapToGrid(origin.X, cs); ax < origin.X+size; ax += cs {
		for az := vec.SnapToGrid(origin.Z, cs); az < origin.Z+size; az += cs {
			col := g.columnAt(ax, az)
			for wx := ax; wx < ax+cs; wx++ {
				for wz := az; wz < az+cs; wz++ {
					g.fillColumn(c, origin, wx, wz, col)
				}
			}
		}
	}

	g.placeTrees(c, origin)
}

// SurfaceHeight мировая высота верхнего блока столбца
func (g *TerrainGenerator) SurfaceHeight(wx, wz int) int {
	cs := g.cfg.ClusterSize
	return g.columnAt(vec.SnapToGrid(wx, cs), vec.SnapToGrid(wz, cs)).height
}

// columnAt вычисляет столбец в точке выборки (ax, az), кратной размеру кластера
func (g *TerrainGenerator) columnAt(ax, az int) column {
	x, z := float64(ax), float64(az)

	h := g.channels.Height.Sample(x, z)*g.cfg.HeightAmplitude +
		g.channels.Detail.Sample(x, z)*g.cfg.DetailAmplitude

	col := column{
		height:  g.cfg.BaseHeight + int(math.Round(h)),
		surface: block.Grass,
		deep:    block.Stone,
	}

	switch m := g.channels.Material.Sample(x, z); {
	case m > g.cfg.StoneThreshold:
		col.surface = block.Stone
	case m < g.cfg.RockThreshold:
		col.surface = block.Cobblestone
	}

	if g.channels.Rock.Sample(x, z) > g.cfg.DeepRockThreshold {
		col.deep = block.Cobblestone
	}
	return col
}

// fillColumn заполняет один столбец региона по правилам слоёв:
// верхний слой материал поверхности, затем SubsoilDepth слоёв земли, ниже порода.
func (g *TerrainGenerator) fillColumn(c *Chunk, origin vec.Vec3, wx, wz int, col column) {
	lx, lz := wx-origin.X, wz-origin.Z
	if lx < 0 || lx >= c.size || lz < 0 || lz >= c.size {
		return
	}

	top := col.height - origin.Y
	if top >= c.size {
		top = c.size - 1
	}
	for ly := 0; ly <= top; ly++ {
		wy := origin.Y + ly
		var t block.BlockType
		switch depth := col.height - wy; {
		case depth == 0:
			t = col.surface
		case depth <= g.cfg.SubsoilDepth:
			t = block.Dirt
		default:
			t = col.deep
		}
		c.setLocked(lx, ly, lz, t)
	}
}

// treeAt возвращает дерево узла сетки, если оно там растёт
func (g *TerrainGenerator) treeAt(anchor vec.Vec2) (tree, bool) {
	if !anchor.OnGrid(g.cfg.TreeSpacing) {
		return tree{}, false
	}
	tx, tz := anchor.X, anchor.Y
	if g.channels.TreeDensity.Sample(float64(tx), float64(tz)) <= g.cfg.TreeThreshold {
		return tree{}, false
	}
	col := g.columnAt(tx, tz)
	if col.surface != block.Grass {
		return tree{}, false
	}

	// Локальный генератор для детерминированной высоты ствола
	treeSeed := g.cfg.Seed + int64(tx)*31 + int64(tz)*17
	rng := rand.New(rand.NewSource(treeSeed))
	height := g.cfg.TrunkMin + rng.Intn(g.cfg.TrunkMax-g.cfg.TrunkMin+1)

	return tree{anchor: anchor, base: col.height + 1, height: height}, true
}

// placeTrees ставит все деревья, задевающие регион, включая деревья соседних регионов.
// Сначала стволы, затем листва только в воздух: итог не зависит от порядка обхода.
func (g *TerrainGenerator) placeTrees(c *Chunk, origin vec.Vec3) {
	spacing := g.cfg.TreeSpacing
	reach := g.cfg.CanopyRadius + 1

	var trees []tree
	for tx := vec.SnapToGrid(origin.X-reach, spacing); tx < origin.X+c.size+reach; tx += spacing {
		for tz := vec.SnapToGrid(origin.Z-reach, spacing); tz < origin.Z+c.size+reach; tz += spacing {
			if t, ok := g.treeAt(vec.Vec2{X: tx, Y: tz}); ok {
				trees = append(trees, t)
			}
		}
	}

	for _, t := range trees {
		for y := t.base; y < t.base+t.height; y++ {
			c.setLocked(t.anchor.X-origin.X, y-origin.Y, t.anchor.Y-origin.Z, block.OakLog)
		}
	}

	r := g.cfg.CanopyRadius
	limit := (float64(r) + 0.5) * (float64(r) + 0.5)
	for _, t := range trees {
		cy := t.base + t.height - 1
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				for dz := -r; dz <= r; dz++ {
					if float64(dx*dx+dy*dy+dz*dz) > limit {
						continue
					}
					lx, ly, lz := t.anchor.X+dx-origin.X, cy+dy-origin.Y, t.anchor.Y+dz-origin.Z
					if c.InBounds(lx, ly, lz) && c.getLocked(lx, ly, lz) == block.Air {
						c.setLocked(lx, ly, lz, block.OakLeaves)
					}
				}
			}
		}
	}
}
