package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"

	"github.com/annel0/voxel-core/internal/vec"
)

// ErrClosed операция над закрытым кэшем
var ErrClosed = errors.New("storage: region cache is closed")

// RegionCache хранит сериализованные сетки выгруженных регионов в BadgerDB.
// Значения сжимаются zstd.
type RegionCache struct {
	db      *badger.DB
	path    string
	enc     *zstd.Encoder
	dec     *zstd.Decoder
	mutex   sync.RWMutex
	isReady bool
}

// NewRegionCache открывает кэш в каталоге path.
// Пустой путь означает хранение только в памяти.
func NewRegionCache(path string) (*RegionCache, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return &RegionCache{
		db:      db,
		path:    path,
		enc:     enc,
		dec:     dec,
		isReady: true,
	}, nil
}

func regionKey(coord vec.Vec3) []byte {
	return []byte(fmt.Sprintf("region:%d:%d:%d", coord.X, coord.Y, coord.Z))
}

// Put сохраняет данные региона, перезаписывая прежние
func (rc *RegionCache) Put(coord vec.Vec3, data []byte) error {
	rc.mutex.RLock()
	defer rc.mutex.RUnlock()

	if !rc.isReady {
		return ErrClosed
	}

	packed := rc.enc.EncodeAll(data, make([]byte, 0, len(data)/4))
	err := rc.db.Update(func(txn *badger.Txn) error {
		return txn.Set(regionKey(coord), packed)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения региона %v: %w", coord, err)
	}
	return nil
}

// Get возвращает данные региона. ok=false, если записи нет.
func (rc *RegionCache) Get(coord vec.Vec3) ([]byte, bool, error) {
	rc.mutex.RLock()
	defer rc.mutex.RUnlock()

	if !rc.isReady {
		return nil, false, ErrClosed
	}

	var packed []byte
	err := rc.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(regionKey(coord))
		if err != nil {
			return err
		}
		packed, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения региона %v: %w", coord, err)
	}

	data, err := rc.dec.DecodeAll(packed, nil)
	if err != nil {
		return nil, false, fmt.Errorf("повреждённая запись региона %v: %w", coord, err)
	}
	return data, true, nil
}

// Delete удаляет запись региона. Отсутствие записи не ошибка.
func (rc *RegionCache) Delete(coord vec.Vec3) error {
	rc.mutex.RLock()
	defer rc.mutex.RUnlock()

	if !rc.isReady {
		return ErrClosed
	}

	err := rc.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(regionKey(coord))
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления региона %v: %w", coord, err)
	}
	return nil
}

// Len количество сохранённых регионов
func (rc *RegionCache) Len() (int, error) {
	rc.mutex.RLock()
	defer rc.mutex.RUnlock()

	if !rc.isReady {
		return 0, ErrClosed
	}

	count := 0
	err := rc.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte("region:")
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Close закрывает хранилище. Повторный вызов ничего не делает.
func (rc *RegionCache) Close() error {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	if !rc.isReady {
		return nil
	}

	rc.isReady = false
	rc.dec.Close()
	if err := rc.enc.Close(); err != nil {
		rc.db.Close()
		return err
	}
	return rc.db.Close()
}
