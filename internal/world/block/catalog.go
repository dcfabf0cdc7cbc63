package block

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrUndefinedType возвращается при обращении к типу, не зарегистрированному в каталоге
var ErrUndefinedType = errors.New("block type is not defined")

// BlockType представляет идентификатор типа блока
type BlockType uint16

// Константы типов блоков. Air зарезервирован и означает пустую ячейку.
const (
	Air BlockType = iota // 0
	Dirt
	Grass
	GrassFull
	Stone
	Cobblestone
	OakLog
	OakLeaves
	// Debug использует шесть разных тайлов, чтобы проверять ориентацию граней
	Debug
)

var typeNames = map[BlockType]string{
	Air:         "air",
	Dirt:        "dirt",
	Grass:       "grass",
	GrassFull:   "grass_full",
	Stone:       "stone",
	Cobblestone: "cobblestone",
	OakLog:      "oak_log",
	OakLeaves:   "oak_leaves",
	Debug:       "debug",
}

// String возвращает имя типа блока
func (t BlockType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("block(%d)", uint16(t))
}

// ParseBlockType ищет тип по имени
func ParseBlockType(name string) (BlockType, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return Air, false
}

// Face индекс грани куба в каноническом порядке
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
	FaceCount = 6
)

// Definition описывает визуальные и физические свойства типа блока.
// Создаётся один раз при старте и больше не меняется.
type Definition struct {
	Type         BlockType
	IsOpaque     bool
	CanSubdivide bool // участвует в случайной вариации текстуры
	// FaceAtlasIndices порядок: +X, -X, +Y, -Y, +Z, -Z
	FaceAtlasIndices [FaceCount]int
}

// IsTransparent обратное значение IsOpaque
func (d Definition) IsTransparent() bool {
	return !d.IsOpaque
}

// NewDefinition создаёт описание блока с одной текстурой на всех гранях
func NewDefinition(t BlockType, opaque, canSubdivide bool, allFacesIndex int) Definition {
	def := Definition{Type: t, IsOpaque: opaque, CanSubdivide: canSubdivide}
	for i := range def.FaceAtlasIndices {
		def.FaceAtlasIndices[i] = allFacesIndex
	}
	return def
}

// NewDefinitionPerFace создаёт описание блока с отдельной текстурой на каждой грани
func NewDefinitionPerFace(t BlockType, opaque, canSubdivide bool, posX, negX, posY, negY, posZ, negZ int) Definition {
	return Definition{
		Type:             t,
		IsOpaque:         opaque,
		CanSubdivide:     canSubdivide,
		FaceAtlasIndices: [FaceCount]int{posX, negX, posY, negY, posZ, negZ},
	}
}

// Catalog неизменяемая после Freeze таблица описаний блоков.
// Заполняется при старте, затем безопасна для параллельного чтения без блокировок.
type Catalog struct {
	defs   map[BlockType]Definition
	frozen atomic.Bool
}

// NewCatalog создаёт каталог с предопределённым воздухом
func NewCatalog() *Catalog {
	c := &Catalog{defs: make(map[BlockType]Definition)}
	c.defs[Air] = NewDefinition(Air, false, false, 0)
	return c
}

// Define регистрирует описание блока. Повторная регистрация, переопределение
// воздуха и регистрация после Freeze являются ошибками программиста.
func (c *Catalog) Define(def Definition) {
	if c.frozen.Load() {
		panic(fmt.Sprintf("block catalog is frozen, cannot define %s", def.Type))
	}
	if def.Type == Air {
		panic("block catalog: air is reserved")
	}
	if _, exists := c.defs[def.Type]; exists {
		panic(fmt.Sprintf("block catalog: %s defined twice", def.Type))
	}
	for face, idx := range def.FaceAtlasIndices {
		if idx < 0 {
			panic(fmt.Sprintf("block catalog: %s has negative atlas index on face %d", def.Type, face))
		}
	}
	c.defs[def.Type] = def
}

// Freeze запрещает дальнейшие изменения каталога
func (c *Catalog) Freeze() {
	c.frozen.Store(true)
}

// Frozen сообщает, заморожен ли каталог
func (c *Catalog) Frozen() bool {
	return c.frozen.Load()
}

// Lookup возвращает описание блока без паники
func (c *Catalog) Lookup(t BlockType) (Definition, bool) {
	def, ok := c.defs[t]
	return def, ok
}

// Get возвращает описание блока или ошибку ErrUndefinedType
func (c *Catalog) Get(t BlockType) (Definition, error) {
	def, ok := c.defs[t]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUndefinedType, t)
	}
	return def, nil
}

// MustGet возвращает описание блока и паникует для неизвестного типа
func (c *Catalog) MustGet(t BlockType) Definition {
	def, err := c.Get(t)
	if err != nil {
		panic(err)
	}
	return def
}

// IsOpaque короткий доступ к непрозрачности типа
func (c *Catalog) IsOpaque(t BlockType) bool {
	return c.MustGet(t).IsOpaque
}

// Len возвращает количество описаний, включая воздух
func (c *Catalog) Len() int {
	return len(c.defs)
}
