package world

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
)

// ErrDecode сериализованный регион повреждён или несовместим
var ErrDecode = errors.New("chunk decode failed")

var chunkMagic = [4]byte{'V', 'X', 'R', '1'}

// chunkHeader заголовок сериализованного региона
type chunkHeader struct {
	Magic   [4]byte
	X, Y, Z int32
	Size    uint16
}

// MarshalBinary сериализует координаты и сетку региона
func (c *Chunk) MarshalBinary() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var buf bytes.Buffer
	buf.Grow(18 + len(c.blocks)*2)

	hdr := chunkHeader{
		Magic: chunkMagic,
		X:     int32(c.coord.X),
		Y:     int32(c.coord.Y),
		Z:     int32(c.coord.Z),
		Size:  uint16(c.size),
	}
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, c.blocks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeChunk восстанавливает регион из MarshalBinary.
// Восстановленный регион помечен как изменённый игроком и требует меша.
func DecodeChunk(data []byte) (*Chunk, error) {
	r := bytes.NewReader(data)

	var hdr chunkHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrDecode, err)
	}
	if hdr.Magic != chunkMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrDecode, hdr.Magic[:])
	}
	if hdr.Size == 0 {
		return nil, fmt.Errorf("%w: zero size", ErrDecode)
	}

	size := int(hdr.Size)
	if r.Len() != size*size*size*2 {
		return nil, fmt.Errorf("%w: expected %d bytes of blocks, got %d", ErrDecode, size*size*size*2, r.Len())
	}

	c := NewChunk(vec.Vec3{X: int(hdr.X), Y: int(hdr.Y), Z: int(hdr.Z)}, size)
	if err := binary.Read(r, binary.LittleEndian, c.blocks); err != nil {
		return nil, fmt.Errorf("%w: blocks: %v", ErrDecode, err)
	}
	c.dirty.Store(true)
	c.edited.Store(true)
	return c, nil
}

// validateTypes проверяет, что все типы сетки описаны в каталоге
func (c *Chunk) validateTypes(catalog *block.Catalog) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, t := range c.blocks {
		if _, ok := catalog.Lookup(t); !ok {
			return fmt.Errorf("%w: %w", ErrDecode, fmt.Errorf("%w: %s", block.ErrUndefinedType, t))
		}
	}
	return nil
}
