package block

// Порядок тайлов в атласе:
// 0: dirt
// 1: grass_block_top
// 2: grass_block_side
// 3: grass_block_side_overlay
// 4: oak_log (бок)
// 5: oak_log_top (верх и низ)
// 6: oak_leaves
// 7: stone
// 8: cobblestone
const (
	TileDirt = iota
	TileGrassTop
	TileGrassSide
	TileGrassSideOverlay
	TileOakLog
	TileOakLogTop
	TileOakLeaves
	TileStone
	TileCobblestone

	// DefaultTileCount количество тайлов стандартного атласа
	DefaultTileCount
)

// RegisterDefaults регистрирует стандартный набор блоков
func RegisterDefaults(c *Catalog) {
	c.Define(NewDefinition(Dirt, true, true, TileDirt))

	// Верх трава, низ земля, бока боковая текстура травы
	c.Define(NewDefinitionPerFace(Grass, true, true,
		TileGrassSide, TileGrassSide,
		TileGrassTop, TileDirt,
		TileGrassSide, TileGrassSide,
	))

	c.Define(NewDefinition(GrassFull, true, true, TileGrassTop))
	c.Define(NewDefinition(Stone, true, true, TileStone))
	c.Define(NewDefinition(Cobblestone, true, true, TileCobblestone))

	c.Define(NewDefinitionPerFace(OakLog, true, true,
		TileOakLog, TileOakLog,
		TileOakLogTop, TileOakLogTop,
		TileOakLog, TileOakLog,
	))

	// Листва полупрозрачная
	c.Define(NewDefinition(OakLeaves, false, true, TileOakLeaves))

	c.Define(NewDefinitionPerFace(Debug, true, false, 0, 1, 2, 3, 4, 5))
}

// NewDefaultCatalog создаёт и замораживает каталог со стандартным набором блоков
func NewDefaultCatalog() *Catalog {
	c := NewCatalog()
	RegisterDefaults(c)
	c.Freeze()
	return c
}
